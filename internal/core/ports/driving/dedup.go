package driving

import "github.com/custodia-labs/prospector/internal/core/domain"

// Deduplicator collapses duplicate prospects into single records.
type Deduplicator interface {
	// FindDuplicates returns groups of indices judged identical.
	FindDuplicates(prospects []domain.Prospect) [][]int

	// MergeProspects combines one duplicate group into a single record.
	MergeProspects(group []domain.Prospect) domain.Prospect

	// Deduplicate merges each group exactly once and appends every prospect
	// that belonged to no group. Every input is represented exactly once.
	Deduplicate(prospects []domain.Prospect) []domain.Prospect
}
