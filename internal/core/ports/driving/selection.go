package driving

import "github.com/custodia-labs/prospector/internal/core/domain"

// SourceSelector turns an ICP into a ranked set of platforms and query plans,
// and adapts future rankings from observed performance.
type SourceSelector interface {
	// AnalyzeICP ranks platforms for icp and returns at most the configured
	// maximum of enabled SourceConfigs, highest priority first.
	AnalyzeICP(icp domain.ICP) []domain.SourceConfig

	// Strategies builds a fresh SearchStrategy for each platform.
	Strategies(platforms []domain.Platform, icp domain.ICP) map[domain.Platform]domain.SearchStrategy

	// AdjustPriority feeds a performance score in [0,1] back into the
	// platform's multiplier for subsequent AnalyzeICP calls.
	AdjustPriority(platform domain.Platform, performance float64)

	// Multiplier returns the current performance multiplier for a platform.
	Multiplier(platform domain.Platform) float64
}
