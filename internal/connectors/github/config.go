package github

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// Search sizing, per sub-search.
const (
	ReposPerSearch         = 20
	MaxContributorsPerRepo = 5
	UsersPerSearch         = 20
	OrgsPerSearch          = 10
	MaxMembersPerOrg       = 10
)

// Filters holds the recognised search filters.
type Filters struct {
	// Language restricts the repository search (language:X).
	Language string

	// MinStars restricts the repository search (stars:>=N).
	MinStars int

	// Location restricts the user search (location:X).
	Location string

	// MinFollowers restricts the user search (followers:>=N).
	MinFollowers int

	// Limit caps the raw records returned by one Search call.
	Limit int
}

// ParseFilters reads Filters from the open filter map. Unknown keys,
// including sort/order from the source defaults, are ignored.
func ParseFilters(m map[string]any, defaultLimit int) Filters {
	return Filters{
		Language:     domain.ParamString(m, "language", ""),
		MinStars:     domain.ParamInt(m, "min_stars", 0),
		Location:     domain.ParamString(m, "location", ""),
		MinFollowers: domain.ParamInt(m, "min_followers", 0),
		Limit:        domain.ParamInt(m, domain.FilterResultLimit, defaultLimit),
	}
}

// RepositoryQuery builds the repository search expression.
func (f Filters) RepositoryQuery(query string) string {
	parts := []string{strings.TrimSpace(query)}
	if f.Language != "" {
		parts = append(parts, "language:"+f.Language)
	}
	if f.MinStars > 0 {
		parts = append(parts, fmt.Sprintf("stars:>=%d", f.MinStars))
	}
	return strings.Join(parts, " ")
}

// UserQuery builds the user search expression.
func (f Filters) UserQuery(query string) string {
	parts := []string{strings.TrimSpace(query)}
	if f.Location != "" {
		parts = append(parts, "location:"+quoteIfSpaced(f.Location))
	}
	if f.MinFollowers > 0 {
		parts = append(parts, fmt.Sprintf("followers:>=%d", f.MinFollowers))
	}
	return strings.Join(parts, " ")
}

// OrgQuery builds the organisation search expression.
func (f Filters) OrgQuery(query string) string {
	return strings.TrimSpace(query) + " type:org"
}

func quoteIfSpaced(s string) string {
	if strings.ContainsRune(s, ' ') {
		return `"` + s + `"`
	}
	return s
}
