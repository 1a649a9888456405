package twitter

import (
	"context"
	"time"

	"github.com/custodia-labs/prospector/internal/connectors/ratelimit"
	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/logger"
)

var _ driven.PlatformAdapter = (*Adapter)(nil)

// TokenEnv is the credential key for the app bearer token.
const TokenEnv = "TWITTER_BEARER_TOKEN"

// Published API quota for recent search.
const (
	RequestsPerMinute = 300
	RequestsPerHour   = 300
)

// Adapter finds prospects among recent tweet authors.
type Adapter struct {
	cfg      domain.SourceConfig
	client   *Client
	throttle *ratelimit.Throttle
	hasToken bool
	stats    ratelimit.Stats
	now      func() time.Time
}

// New creates a Twitter adapter. A missing token makes Authenticate fail.
func New(cfg domain.SourceConfig, creds driven.CredentialSource) (driven.PlatformAdapter, error) {
	return NewWithTimeout(cfg, creds, DefaultTimeout)
}

// NewWithTimeout is New with a custom per-request timeout.
func NewWithTimeout(cfg domain.SourceConfig, creds driven.CredentialSource, timeout time.Duration) (driven.PlatformAdapter, error) {
	token, ok := creds.Lookup(TokenEnv)
	throttle := ratelimit.NewThrottle(domain.PlatformTwitter, cfg.Delay(), RequestsPerMinute, RequestsPerHour)
	return &Adapter{
		cfg:      cfg,
		client:   NewClient(token, throttle, timeout),
		throttle: throttle,
		hasToken: ok,
		now:      time.Now,
	}, nil
}

// NewWithClient creates an adapter around an existing client and throttle.
func NewWithClient(cfg domain.SourceConfig, client *Client, throttle *ratelimit.Throttle) *Adapter {
	return &Adapter{
		cfg:      cfg,
		client:   client,
		throttle: throttle,
		hasToken: true,
		now:      time.Now,
	}
}

// Platform returns the Twitter platform identifier.
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformTwitter
}

// Authenticate validates the bearer token with a user lookup.
func (a *Adapter) Authenticate(ctx context.Context) bool {
	if !a.hasToken {
		logger.Warn("twitter: %s is not set", TokenEnv)
		return false
	}
	if err := a.client.CheckToken(ctx); err != nil {
		logger.Warn("twitter: authentication failed: %v", err)
		return false
	}
	logger.Debug("twitter: bearer token accepted")
	return true
}

// RateLimits returns a snapshot of the throttle state.
func (a *Adapter) RateLimits() domain.RateLimitInfo {
	return a.throttle.Snapshot()
}

// Metrics returns a snapshot of the adapter's counters.
func (a *Adapter) Metrics() domain.SourceMetrics {
	return a.stats.Snapshot()
}

// Search finds recent tweets and returns one record per tweet whose author
// was expanded in the response. The v2 API offers no user search at this
// access tier, so tweets are the only discovery path.
func (a *Adapter) Search(ctx context.Context, query string, filters map[string]any) []domain.RawResult {
	start := a.now()
	f := ParseFilters(filters, a.cfg.MaxResults)

	resp, err := a.client.SearchRecent(ctx, f.Query(query), f.PageSize())
	if err != nil {
		logger.Warn("twitter: search %q: %v", query, err)
		a.stats.Record(0, a.now().Sub(start), false, 1)
		return nil
	}

	users := make(map[string]User, len(resp.Includes.Users))
	for _, u := range resp.Includes.Users {
		users[u.ID] = u
	}

	var results []domain.RawResult
	for _, tweet := range resp.Data {
		if f.Limit > 0 && len(results) >= f.Limit {
			break
		}
		u, ok := users[tweet.AuthorID]
		if !ok || u.Username == "" {
			continue
		}
		if u.PublicMetrics.FollowersCount < f.MinFollowers {
			continue
		}
		results = append(results, tweetRecord(tweet, u))
	}

	a.stats.Record(len(results), a.now().Sub(start), true, 0)
	logger.Debug("twitter: %q returned %d records", query, len(results))
	return results
}

func tweetRecord(t Tweet, u User) domain.RawResult {
	return domain.RawResult{
		"type": "tweet_author",
		"tweet": map[string]any{
			"id":         t.ID,
			"text":       t.Text,
			"created_at": t.CreatedAt,
		},
		"user": map[string]any{
			"id":              u.ID,
			"name":            u.Name,
			"username":        u.Username,
			"description":     u.Description,
			"location":        u.Location,
			"url":             u.URL,
			"verified":        u.Verified,
			"followers_count": u.PublicMetrics.FollowersCount,
			"following_count": u.PublicMetrics.FollowingCount,
			"tweet_count":     u.PublicMetrics.TweetCount,
		},
		"source_url": "https://twitter.com/" + u.Username + "/status/" + t.ID,
	}
}
