package driving

import "github.com/custodia-labs/prospector/internal/core/domain"

// LeadScorer combines the four lead sub-scores into one relevance score.
type LeadScorer interface {
	// OverallScore returns the weighted score for one prospect, in [0,1].
	OverallScore(p *domain.Prospect, icp domain.ICP) float64

	// ScoreAll returns copies of prospects with RelevanceScore set.
	ScoreAll(prospects []domain.Prospect, icp domain.ICP) []domain.Prospect
}
