package websearch

import (
	"context"
	"strings"
	"time"

	"google.golang.org/api/option"

	"github.com/custodia-labs/prospector/internal/connectors/ratelimit"
	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/logger"
)

var _ driven.PlatformAdapter = (*Adapter)(nil)

// Credential keys.
const (
	APIKeyEnv   = "GOOGLE_CSE_API_KEY"
	EngineIDEnv = "GOOGLE_CSE_ID"
)

// Free-tier quota of the Custom Search JSON API.
const (
	RequestsPerMinute = 100
	RequestsPerDay    = 100
)

// Adapter searches the web for public profile pages.
type Adapter struct {
	cfg      domain.SourceConfig
	client   *Client
	throttle *ratelimit.Throttle
	initErr  error
	stats    ratelimit.Stats
	now      func() time.Time
}

// New creates a web search adapter. Missing credentials or a failed client
// construction are reported by Authenticate.
func New(cfg domain.SourceConfig, creds driven.CredentialSource) (driven.PlatformAdapter, error) {
	return NewWithTimeout(cfg, creds, DefaultTimeout)
}

// NewWithTimeout is New with a custom per-request timeout.
func NewWithTimeout(cfg domain.SourceConfig, creds driven.CredentialSource, timeout time.Duration) (driven.PlatformAdapter, error) {
	return newAdapter(context.Background(), cfg, creds, timeout)
}

func newAdapter(
	ctx context.Context,
	cfg domain.SourceConfig,
	creds driven.CredentialSource,
	timeout time.Duration,
	opts ...option.ClientOption,
) (*Adapter, error) {
	throttle := ratelimit.NewThrottle(domain.PlatformGoogleSearch, cfg.Delay(), RequestsPerMinute, RequestsPerDay)
	a := &Adapter{cfg: cfg, throttle: throttle, now: time.Now}

	key, okKey := creds.Lookup(APIKeyEnv)
	engine, okEngine := creds.Lookup(EngineIDEnv)
	if !okKey || !okEngine {
		a.initErr = domain.ErrAuthRequired
		return a, nil
	}

	a.client, a.initErr = NewClient(ctx, key, engine, throttle, timeout, opts...)
	return a, nil
}

// NewWithClient creates an adapter around an existing client and throttle.
func NewWithClient(cfg domain.SourceConfig, client *Client, throttle *ratelimit.Throttle) *Adapter {
	return &Adapter{cfg: cfg, client: client, throttle: throttle, now: time.Now}
}

// Platform returns the web search platform identifier.
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformGoogleSearch
}

// Authenticate reports whether both credentials are configured. The API
// has no free endpoint to verify them, so a bad key surfaces on the first
// search as a call error.
func (a *Adapter) Authenticate(_ context.Context) bool {
	if a.initErr != nil {
		logger.Warn("google_search: %s and %s are required: %v", APIKeyEnv, EngineIDEnv, a.initErr)
		return false
	}
	return a.client != nil
}

// RateLimits returns a snapshot of the throttle state.
func (a *Adapter) RateLimits() domain.RateLimitInfo {
	return a.throttle.Snapshot()
}

// Metrics returns a snapshot of the adapter's counters.
func (a *Adapter) Metrics() domain.SourceMetrics {
	return a.stats.Snapshot()
}

// Search issues one search request and returns its hits as
// {title, link, snippet} records.
func (a *Adapter) Search(ctx context.Context, query string, filters map[string]any) []domain.RawResult {
	start := a.now()
	if a.client == nil {
		a.stats.Record(0, a.now().Sub(start), false, 1)
		return nil
	}

	if site := domain.ParamString(filters, "site", ""); site != "" && !strings.Contains(query, "site:") {
		query += " site:" + site
	}
	limit := domain.ParamInt(filters, domain.FilterResultLimit, a.cfg.MaxResults)

	items, err := a.client.Search(ctx, query, limit)
	if err != nil {
		logger.Warn("google_search: %q: %v", query, err)
		a.stats.Record(0, a.now().Sub(start), false, 1)
		return nil
	}

	results := make([]domain.RawResult, 0, len(items))
	for _, it := range items {
		if limit > 0 && len(results) >= limit {
			break
		}
		results = append(results, domain.RawResult{
			"title":   it.Title,
			"link":    it.Link,
			"snippet": it.Snippet,
		})
	}

	a.stats.Record(len(results), a.now().Sub(start), true, 0)
	logger.Debug("google_search: %q returned %d records", query, len(results))
	return results
}
