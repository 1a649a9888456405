package services

import (
	"fmt"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// Per-platform raw result limits used by the strategy builders.
const (
	twitterResultLimit     = 100
	githubResultLimit      = 50
	redditResultLimit      = 75
	stackResultLimit       = 50
	productHuntResultLimit = 30
	crunchbaseResultLimit  = 25
	webResultLimit         = 50
)

// queryTerms are the ICP-derived search terms, synonyms included.
type queryTerms struct {
	industry []string
	role     []string
	company  []string
}

func (e *SourceSelectionEngine) terms(icp domain.ICP) queryTerms {
	signals := ExtractSignals(icp)

	var t queryTerms
	if signals.Industry != "" {
		t.industry = append([]string{signals.Industry}, e.tables.IndustrySynonyms[signals.Industry]...)
	}
	for _, role := range signals.Roles {
		t.role = append(t.role, role)
		t.role = append(t.role, e.tables.RoleSynonyms[role]...)
	}
	t.company = append(t.company, e.tables.SizeTerms[signals.CompanySize]...)
	return t
}

// Strategies builds a fresh query plan for each platform.
func (e *SourceSelectionEngine) Strategies(platforms []domain.Platform, icp domain.ICP) map[domain.Platform]domain.SearchStrategy {
	t := e.terms(icp)

	out := make(map[domain.Platform]domain.SearchStrategy, len(platforms))
	for _, p := range platforms {
		out[p] = buildStrategy(p, t)
	}
	return out
}

func buildStrategy(p domain.Platform, t queryTerms) domain.SearchStrategy {
	switch p {
	case domain.PlatformTwitter:
		return twitterStrategy(t)
	case domain.PlatformGitHub:
		return githubStrategy(t)
	case domain.PlatformReddit:
		return redditStrategy(t)
	case domain.PlatformStackOverflow:
		return stackOverflowStrategy(t)
	case domain.PlatformProductHunt:
		return newStrategy(t.industry, t.role, map[string]any{"featured": true}, productHuntResultLimit)
	case domain.PlatformCrunchbase:
		return crunchbaseStrategy(t)
	case domain.PlatformGoogleSearch:
		return webSearchStrategy(t)
	default:
		return newStrategy(concat(t.industry, t.role), t.industry, nil, domain.DefaultResultLimit)
	}
}

func newStrategy(primary, fallback []string, filters map[string]any, limit int) domain.SearchStrategy {
	if filters == nil {
		filters = map[string]any{}
	}
	return domain.SearchStrategy{
		PrimaryQueries:   nonNil(primary),
		FallbackQueries:  nonNil(fallback),
		Filters:          filters,
		ResultLimit:      limit,
		QualityThreshold: domain.DefaultQualityThreshold,
	}
}

func twitterStrategy(t queryTerms) domain.SearchStrategy {
	var primary []string
	for _, role := range head(t.role, 3) {
		for _, industry := range head(t.industry, 2) {
			primary = append(primary, role+" "+industry)
		}
	}
	return newStrategy(primary, concat(t.industry, t.role),
		map[string]any{"verified": true, "min_followers": 100}, twitterResultLimit)
}

func githubStrategy(t queryTerms) domain.SearchStrategy {
	var primary []string
	for _, industry := range t.industry {
		primary = append(primary, "language:"+industry, "topic:"+industry)
	}
	return newStrategy(primary, t.role,
		map[string]any{"sort": "stars", "order": "desc"}, githubResultLimit)
}

func redditStrategy(t queryTerms) domain.SearchStrategy {
	var primary []string
	for _, term := range concat(t.industry, t.role) {
		primary = append(primary, "subreddit:"+term)
	}
	return newStrategy(primary, t.industry,
		map[string]any{"sort": "hot", "time": "month"}, redditResultLimit)
}

func stackOverflowStrategy(t queryTerms) domain.SearchStrategy {
	var primary []string
	for _, term := range t.industry {
		primary = append(primary, "["+term+"]")
	}
	return newStrategy(primary, t.role,
		map[string]any{"sort": "votes", "min_reputation": 1000}, stackResultLimit)
}

func crunchbaseStrategy(t queryTerms) domain.SearchStrategy {
	var primary []string
	for _, industry := range t.industry {
		for _, size := range t.company {
			primary = append(primary, industry+" "+size)
		}
	}
	return newStrategy(primary, t.industry,
		map[string]any{"funding_stage": "seed,series-a,series-b"}, crunchbaseResultLimit)
}

func webSearchStrategy(t queryTerms) domain.SearchStrategy {
	var primary []string
	for _, role := range head(t.role, 2) {
		for _, industry := range head(t.industry, 2) {
			primary = append(primary, fmt.Sprintf(`%q %q site:linkedin.com`, role, industry))
		}
	}
	var fallback []string
	for _, term := range concat(t.industry, t.role) {
		fallback = append(fallback, fmt.Sprintf(`%q site:linkedin.com`, term))
	}
	return newStrategy(primary, fallback, nil, webResultLimit)
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
