package twitter

import (
	"math"
	"strings"
	"time"

	"github.com/custodia-labs/prospector/internal/connectors/profile"
	"github.com/custodia-labs/prospector/internal/core/domain"
)

// Engagement weights.
const (
	followersWeight = 0.4
	tweetsWeight    = 0.3
	verifiedWeight  = 0.3
)

// Engagement scores an account: followers/10000, tweets/1000 and the
// verified flag, weighted 0.4/0.3/0.3. Negative inputs count as zero and
// the result is clamped to [0,1].
func Engagement(followers, tweets float64, verified bool) float64 {
	score := nonNegative(followers)/10000*followersWeight + nonNegative(tweets)/1000*tweetsWeight
	if verified {
		score += verifiedWeight
	}
	return domain.Clamp01(score)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// ExtractProspects maps tweet-author records to prospects. Records without
// a user object are skipped.
func (a *Adapter) ExtractProspects(raw []domain.RawResult) []domain.Prospect {
	prospects := make([]domain.Prospect, 0, len(raw))
	for _, r := range raw {
		if p, ok := extractProspect(r); ok {
			prospects = append(prospects, p)
		}
	}
	return prospects
}

func extractProspect(r domain.RawResult) (domain.Prospect, bool) {
	user := r.Map("user")
	username := strings.TrimSpace(user.Str("username"))
	if username == "" {
		return domain.Prospect{}, false
	}
	tweet := r.Map("tweet")

	name := strings.TrimSpace(user.Str("name"))
	if name == "" {
		name = username
	}

	bio := strings.TrimSpace(user.Str("description"))
	profileURL := profile.URL(domain.PlatformTwitter, username)
	sourceURL := r.Str("source_url")
	if sourceURL == "" {
		sourceURL = profileURL
	}

	followers := user.Num("followers_count")
	tweets := user.Num("tweet_count")

	p := domain.Prospect{
		Name:            name,
		Title:           profile.Title(bio, profile.BusinessTitles),
		Company:         profile.Company(bio),
		TwitterURL:      profileURL,
		Website:         profile.Website(user.Str("url")),
		Bio:             bio,
		Location:        strings.TrimSpace(user.Str("location")),
		SourcePlatform:  domain.PlatformTwitter,
		SourceURL:       sourceURL,
		EngagementScore: Engagement(followers, tweets, user.Bool("verified")),
		AdditionalData: map[string]any{
			"username":        username,
			"followers_count": int(followers),
			"following_count": int(user.Num("following_count")),
			"tweet_count":     int(tweets),
			"verified":        user.Bool("verified"),
			"tweet_context":   tweet.Str("text"),
		},
	}

	if created, err := time.Parse(time.RFC3339, tweet.Str("created_at")); err == nil {
		p.LastActivity = &created
	}

	p.ClampScores()
	return p, true
}
