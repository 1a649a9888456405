package twitter

import (
	"strings"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// Page bounds accepted by tweets/search/recent.
const (
	DefaultMaxResults = 50
	MinPageSize       = 10
	MaxPageSize       = 100
)

// Filters holds the recognised search filters.
type Filters struct {
	MaxResults   int
	Language     string
	HasLinks     bool
	VerifiedOnly bool
	MinFollowers int
	Limit        int
}

// ParseFilters reads Filters from the open filter map. Verification is
// accepted as "verified" (strategy filters) or "verified_only" (source
// defaults).
func ParseFilters(m map[string]any, defaultLimit int) Filters {
	return Filters{
		MaxResults:   domain.ParamInt(m, "max_results", DefaultMaxResults),
		Language:     domain.ParamString(m, "language", ""),
		HasLinks:     domain.ParamBool(m, "has_links", false),
		VerifiedOnly: domain.ParamBool(m, "verified", domain.ParamBool(m, "verified_only", false)),
		MinFollowers: domain.ParamInt(m, "min_followers", 0),
		Limit:        domain.ParamInt(m, domain.FilterResultLimit, defaultLimit),
	}
}

// Query appends the search operators for f to query.
func (f Filters) Query(query string) string {
	parts := []string{strings.TrimSpace(query)}
	if f.Language != "" {
		parts = append(parts, "lang:"+f.Language)
	}
	if f.HasLinks {
		parts = append(parts, "has:links")
	}
	if f.VerifiedOnly {
		parts = append(parts, "is:verified")
	}
	return strings.Join(parts, " ")
}

// PageSize returns max_results clamped to the API's accepted range and to
// the result limit.
func (f Filters) PageSize() int {
	n := f.MaxResults
	if f.Limit > 0 && f.Limit < n {
		n = f.Limit
	}
	if n > MaxPageSize {
		n = MaxPageSize
	}
	if n < MinPageSize {
		n = MinPageSize
	}
	return n
}
