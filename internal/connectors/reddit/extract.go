package reddit

import (
	"math"
	"strings"
	"time"

	"github.com/custodia-labs/prospector/internal/connectors/profile"
	"github.com/custodia-labs/prospector/internal/core/domain"
)

// Engagement weights.
const (
	karmaWeight    = 0.5
	ageWeight      = 0.2
	verifiedWeight = 0.2
	premiumWeight  = 0.1
)

// Engagement scores a redditor: total karma/10000, account age (saturating
// at one year), verification and premium status, weighted 0.5/0.2/0.2/0.1.
// Negative inputs count as zero and the result is clamped to [0,1].
func Engagement(totalKarma, ageDays float64, verified, premium bool) float64 {
	karma := math.Max(0, totalKarma)
	age := math.Min(1, math.Max(0, ageDays)/365)
	if math.IsNaN(karma) {
		karma = 0
	}
	if math.IsNaN(age) {
		age = 0
	}

	score := karma/10000*karmaWeight + age*ageWeight
	if verified {
		score += verifiedWeight
	}
	if premium {
		score += premiumWeight
	}
	return domain.Clamp01(score)
}

// ExtractProspects maps redditor records to prospects. Reddit exposes no
// real names, so the username is the prospect name.
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

	commentKarma := r.Num("comment_karma")
	linkKarma := r.Num("link_karma")
	totalKarma := commentKarma + linkKarma

	ageDays := 0.0
	if created := r.Num("created_utc"); created > 0 {
		ageDays = now.Sub(fromUnix(created)).Hours() / 24
	}

	profileTitle := strings.TrimSpace(r.Str("profile_title"))
	description := strings.TrimSpace(r.Str("profile_description"))
	text := strings.TrimSpace(profileTitle + " " + description)

	sourceURL := r.Str("user_url")
	if sourceURL == "" {
		sourceURL = profile.URL(domain.PlatformReddit, username)
	}

	activity := r.Map("context")
	subreddit := r.Str("subreddit_context")

	p := domain.Prospect{
		Name:           username,
		Title:          profile.Title(text, profile.BusinessTitles),
		Company:        profile.Company(text),
		SourcePlatform: domain.PlatformReddit,
		SourceURL:      sourceURL,
		Bio:            bio(profileTitle, description, activity.Str("post_title"), subreddit),
		EngagementScore: Engagement(
			totalKarma, ageDays, r.Bool("is_verified"), r.Bool("has_premium"),
		),
		AdditionalData: map[string]any{
			"username":          username,
			"comment_karma":     int(commentKarma),
			"link_karma":        int(linkKarma),
			"total_karma":       int(totalKarma),
			"account_age_days":  int(ageDays),
			"subreddit_context": subreddit,
			"is_verified":       r.Bool("is_verified"),
			"has_premium":       r.Bool("has_premium"),
		},
	}
	if activity != nil {
		p.AdditionalData["context"] = map[string]any(activity)
		if at := activity.Num("activity_utc"); at > 0 {
			t := fromUnix(at)
			p.LastActivity = &t
		}
	}

	p.ClampScores()
	return p, true
}

func bio(profileTitle, description, postTitle, subreddit string) string {
	var parts []string
	if profileTitle != "" {
		parts = append(parts, profileTitle)
	}
	if description != "" {
		parts = append(parts, description)
	}
	if postTitle != "" {
		parts = append(parts, "Recent post: "+postTitle)
	}
	if len(parts) == 0 {
		return "Active in r/" + subreddit
	}
	return strings.Join(parts, " | ")
}

func fromUnix(seconds float64) time.Time {
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}
