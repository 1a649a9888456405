package reddit

import (
	"strings"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// Search sizing.
const (
	DefaultMaxSubreddits     = 5
	DefaultPostsPerSubreddit = 20
	CommentsPerPost          = 5
	CommentTextLimit         = 200
	DefaultTimeFilter        = "month"
)

// DefaultSubreddits are searched when the filters name fewer than
// MaxSubreddits communities.
var DefaultSubreddits = []string{
	"entrepreneur", "startups", "business", "marketing", "sales",
	"technology", "programming", "webdev", "MachineLearning",
	"artificial", "datascience", "investing", "finance",
}

// Filters holds the recognised search filters.
type Filters struct {
	Subreddits        []string
	MaxSubreddits     int
	PostsPerSubreddit int
	Sort              string
	TimeFilter        string
	Limit             int
}

// ParseFilters reads Filters from the open filter map. The time window is
// accepted as "time" (strategy filters) or "time_filter" (source defaults).
func ParseFilters(m map[string]any, defaultLimit int) Filters {
	timeFilter := domain.ParamString(m, "time", "")
	if timeFilter == "" {
		timeFilter = domain.ParamString(m, "time_filter", DefaultTimeFilter)
	}
	return Filters{
		Subreddits:        domain.ParamStrings(m, "subreddits"),
		MaxSubreddits:     domain.ParamInt(m, "max_subreddits", DefaultMaxSubreddits),
		PostsPerSubreddit: domain.ParamInt(m, "posts_per_subreddit", DefaultPostsPerSubreddit),
		Sort:              domain.ParamString(m, "sort", ""),
		TimeFilter:        timeFilter,
		Limit:             domain.ParamInt(m, domain.FilterResultLimit, defaultLimit),
	}
}

// SplitQuery separates "subreddit:name" terms from the free-text query.
// When only subreddit terms are present their names become the text.
func SplitQuery(query string) (text string, subreddits []string) {
	const prefix = "subreddit:"

	var words []string
	for _, w := range strings.Fields(query) {
		if len(w) > len(prefix) && strings.EqualFold(w[:len(prefix)], prefix) {
			if name := strings.Trim(w[len(prefix):], `"'`); name != "" {
				subreddits = append(subreddits, name)
			}
			continue
		}
		words = append(words, w)
	}

	if len(words) == 0 {
		return strings.Join(subreddits, " "), subreddits
	}
	return strings.Join(words, " "), subreddits
}

// SubredditList returns the communities to search: the query's and the
// filters' own first, then the defaults, deduplicated case-insensitively
// and capped at MaxSubreddits.
func (f Filters) SubredditList(fromQuery []string) []string {
	limit := f.MaxSubreddits
	if limit <= 0 {
		limit = DefaultMaxSubreddits
	}

	seen := make(map[string]bool)
	var out []string
	for _, group := range [][]string{fromQuery, f.Subreddits, DefaultSubreddits} {
		for _, s := range group {
			s = strings.TrimPrefix(strings.TrimSpace(s), "r/")
			key := strings.ToLower(s)
			if s == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
