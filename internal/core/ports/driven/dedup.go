package driven

import "github.com/custodia-labs/prospector/internal/core/domain"

// DuplicateMatcher groups indices of prospects judged identical.
// Only groups with two or more members are returned.
type DuplicateMatcher interface {
	FindDuplicates(prospects []domain.Prospect) [][]int
}

// ProspectMerger combines a duplicate group into a single record.
type ProspectMerger interface {
	Merge(group []domain.Prospect) domain.Prospect
}
