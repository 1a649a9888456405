package services

import (
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driving"
	"github.com/custodia-labs/prospector/internal/logger"
)

// Ensure SourceSelectionEngine implements the interface.
var _ driving.SourceSelector = (*SourceSelectionEngine)(nil)

// Performance feedback parameters.
const (
	// MultiplierAlpha is the weight of the newest observation in the
	// exponential moving average.
	MultiplierAlpha = 0.3

	// MultiplierCap bounds the performance multiplier.
	MultiplierCap = 1.0

	defaultMultiplier = 1.0
)

// SourceSelectionEngine ranks platforms for an ICP and builds per-platform
// query plans. Performance multipliers live for the life of the engine.
type SourceSelectionEngine struct {
	tables     SelectionTables
	maxSources int

	mu          sync.Mutex
	multipliers map[domain.Platform]float64
}

// SelectionOption configures a SourceSelectionEngine.
type SelectionOption func(*SourceSelectionEngine)

// WithSelectionTables replaces the built-in lookup tables.
func WithSelectionTables(t SelectionTables) SelectionOption {
	return func(e *SourceSelectionEngine) {
		e.tables = t
	}
}

// WithMaxSources caps the number of platforms AnalyzeICP returns.
// Non-positive values keep the default.
func WithMaxSources(n int) SelectionOption {
	return func(e *SourceSelectionEngine) {
		if n > 0 {
			e.maxSources = n
		}
	}
}

// NewSourceSelectionEngine creates an engine with the default tables.
func NewSourceSelectionEngine(opts ...SelectionOption) *SourceSelectionEngine {
	e := &SourceSelectionEngine{
		tables:      DefaultSelectionTables(),
		maxSources:  domain.DefaultMaxSources,
		multipliers: make(map[domain.Platform]float64),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// platformScores accumulates points while remembering the order in which
// platforms first scored, which breaks ties.
type platformScores struct {
	order  []domain.Platform
	scores map[domain.Platform]float64
}

func (s *platformScores) add(platforms []domain.Platform, points float64) {
	for _, p := range platforms {
		if _, ok := s.scores[p]; !ok {
			s.order = append(s.order, p)
		}
		s.scores[p] += points
	}
}

// AnalyzeICP scores platforms: +3 for the industry, +2 per role, +1 for the
// company size and a +2 baseline for web search. Scores are scaled by the
// performance multipliers and ranked highest first.
func (e *SourceSelectionEngine) AnalyzeICP(icp domain.ICP) []domain.SourceConfig {
	signals := ExtractSignals(icp)
	ps := &platformScores{scores: make(map[domain.Platform]float64)}

	if signals.Industry != "" {
		ps.add(e.tables.IndustryPlatforms[signals.Industry], industryPoints)
	}
	for _, role := range signals.Roles {
		ps.add(e.tables.RolePlatforms[role], rolePoints)
	}
	if signals.CompanySize != "" {
		ps.add(e.tables.SizePlatforms[signals.CompanySize], sizePoints)
	}
	ps.add([]domain.Platform{domain.PlatformGoogleSearch}, baselinePoints)

	ranked := make([]domain.Platform, len(ps.order))
	copy(ranked, ps.order)
	for _, p := range ranked {
		ps.scores[p] *= e.Multiplier(p)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ps.scores[ranked[i]] > ps.scores[ranked[j]]
	})

	if len(ranked) > e.maxSources {
		ranked = ranked[:e.maxSources]
	}

	configs := make([]domain.SourceConfig, 0, len(ranked))
	for _, p := range ranked {
		configs = append(configs, domain.SourceConfig{
			Platform:         p,
			Priority:         priorityFor(ps.scores[p]),
			MaxResults:       e.tables.maxResults(p),
			SearchParameters: map[string]any{},
			RateLimitDelay:   e.tables.delay(p),
			Enabled:          true,
		})
	}

	logger.Debug("selection: industry=%q roles=%v size=%q -> %d sources",
		signals.Industry, signals.Roles, signals.CompanySize, len(configs))
	return configs
}

func priorityFor(score float64) int {
	p := int(math.Round(score))
	if p < domain.MinPriority {
		return domain.MinPriority
	}
	if p > domain.MaxPriority {
		return domain.MaxPriority
	}
	return p
}

// AdjustPriority folds a performance observation into the platform's
// multiplier: new = 0.3*score + 0.7*old, capped at MultiplierCap.
func (e *SourceSelectionEngine) AdjustPriority(platform domain.Platform, performance float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, ok := e.multipliers[platform]
	if !ok {
		old = defaultMultiplier
	}
	next := MultiplierAlpha*domain.Clamp01(performance) + (1-MultiplierAlpha)*old
	if next > MultiplierCap {
		next = MultiplierCap
	}
	e.multipliers[platform] = next
	logger.Debug("selection: %s multiplier %.3f -> %.3f", platform, old, next)
}

// Multiplier returns the current performance multiplier, 1.0 until the
// platform receives feedback.
func (e *SourceSelectionEngine) Multiplier(platform domain.Platform) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m, ok := e.multipliers[platform]; ok {
		return m
	}
	return defaultMultiplier
}
