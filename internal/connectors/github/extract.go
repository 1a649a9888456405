package github

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/prospector/internal/connectors/profile"
	"github.com/custodia-labs/prospector/internal/core/domain"
)

// Engagement weights.
const (
	followersWeight     = 0.3
	reposWeight         = 0.3
	contributionsWeight = 0.2
	ageWeight           = 0.1
	hireableWeight      = 0.1
)

// Engagement scores GitHub activity: followers/1000, public repos/50,
// contributions/100, account age in years (saturating at one year) and the
// hireable flag, weighted 0.3/0.3/0.2/0.1/0.1. Negative inputs count as
// zero and the result is clamped to [0,1].
func Engagement(followers, repos, contributions, ageDays float64, hireable bool) float64 {
	age := nonNegative(ageDays) / 365
	if age > 1 {
		age = 1
	}

	score := nonNegative(followers)/1000*followersWeight +
		nonNegative(repos)/50*reposWeight +
		nonNegative(contributions)/100*contributionsWeight +
		age*ageWeight
	if hireable {
		score += hireableWeight
	}
	return domain.Clamp01(score)
}

func nonNegative(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	return v
}

// ExtractProspects maps GitHub user records to prospects.
func (a *Adapter) ExtractProspects(raw []domain.RawResult) []domain.Prospect {
	now := a.now()
	prospects := make([]domain.Prospect, 0, len(raw))
	for _, r := range raw {
		if p, ok := extractProspect(r, now); ok {
			prospects = append(prospects, p)
		}
	}
	return prospects
}

func extractProspect(r domain.RawResult, now time.Time) (domain.Prospect, bool) {
	username := strings.TrimSpace(r.Str("username"))
	if username == "" {
		return domain.Prospect{}, false
	}

	name := strings.TrimSpace(r.Str("name"))
	if name == "" {
		name = username
	}

	bio := strings.TrimSpace(r.Str("bio"))
	company := strings.TrimPrefix(strings.TrimSpace(r.Str("company")), "@")
	if company == "" {
		company = profile.Company(bio)
	}

	ageDays := 0.0
	if created, err := time.Parse(time.RFC3339, r.Str("created_at")); err == nil {
		ageDays = now.Sub(created).Hours() / 24
	}

	githubURL := r.Str("html_url")
	if githubURL == "" {
		githubURL = profile.URL(domain.PlatformGitHub, username)
	}

	p := domain.Prospect{
		Name:           name,
		Title:          profile.Title(bio, profile.DeveloperTitles),
		Company:        company,
		Email:          strings.TrimSpace(r.Str("email")),
		GitHubURL:      githubURL,
		TwitterURL:     profile.URL(domain.PlatformTwitter, r.Str("twitter_username")),
		Website:        profile.Website(r.Str("blog")),
		Bio:            describe(r, bio),
		Location:       strings.TrimSpace(r.Str("location")),
		SourcePlatform: domain.PlatformGitHub,
		SourceURL:      githubURL,
		EngagementScore: Engagement(
			r.Num("followers"), r.Num("public_repos"), r.Num("contributions"),
			ageDays, r.Bool("hireable"),
		),
		AdditionalData: map[string]any{
			"username":         username,
			"followers":        int(r.Num("followers")),
			"following":        int(r.Num("following")),
			"public_repos":     int(r.Num("public_repos")),
			"contributions":    int(r.Num("contributions")),
			"account_age_days": int(ageDays),
			"hireable":         r.Bool("hireable"),
			"avatar_url":       r.Str("avatar_url"),
		},
	}

	for _, key := range []string{"repository_context", "organization_context", "search_context"} {
		if v, ok := r[key]; ok {
			p.AdditionalData[key] = v
		}
	}

	if updated, err := time.Parse(time.RFC3339, r.Str("updated_at")); err == nil {
		p.LastActivity = &updated
	}

	p.ClampScores()
	return p, true
}

// describe appends how the user was found to their bio.
func describe(r domain.RawResult, bio string) string {
	var parts []string
	if bio != "" {
		parts = append(parts, bio)
	}

	if repoCtx := r.Map("repository_context"); repoCtx != nil {
		switch repoCtx.Str("role") {
		case "owner":
			parts = append(parts, "Owner of "+repoCtx.Str("repository"))
		default:
			parts = append(parts, "Contributor to "+repoCtx.Str("repository"))
		}
	}
	if orgCtx := r.Map("organization_context"); orgCtx != nil {
		parts = append(parts, "Member of "+orgCtx.Str("organization"))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("GitHub developer with %d repositories", int(r.Num("public_repos")))
	}
	return strings.Join(parts, " | ")
}
