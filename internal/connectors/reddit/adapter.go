package reddit

import (
	"context"
	"time"

	"github.com/custodia-labs/prospector/internal/connectors/ratelimit"
	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/logger"
)

var _ driven.PlatformAdapter = (*Adapter)(nil)

// Credential keys.
const (
	ClientIDEnv     = "REDDIT_CLIENT_ID"
	ClientSecretEnv = "REDDIT_CLIENT_SECRET"
	UserAgentEnv    = "REDDIT_USER_AGENT"

	DefaultUserAgent = "prospector/1.0"
)

// Published API quota.
const (
	RequestsPerMinute = 60
	RequestsPerHour   = 3600
)

// Adapter finds active community members on Reddit.
type Adapter struct {
	cfg      domain.SourceConfig
	client   *Client
	throttle *ratelimit.Throttle
	hasCreds bool
	stats    ratelimit.Stats
	now      func() time.Time
}

// New creates a Reddit adapter. Missing credentials make Authenticate fail.
func New(cfg domain.SourceConfig, creds driven.CredentialSource) (driven.PlatformAdapter, error) {
	return NewWithTimeout(cfg, creds, DefaultTimeout)
}

// NewWithTimeout is New with a custom per-request timeout.
func NewWithTimeout(cfg domain.SourceConfig, creds driven.CredentialSource, timeout time.Duration) (driven.PlatformAdapter, error) {
	id, okID := creds.Lookup(ClientIDEnv)
	secret, okSecret := creds.Lookup(ClientSecretEnv)
	userAgent, ok := creds.Lookup(UserAgentEnv)
	if !ok {
		userAgent = DefaultUserAgent
	}

	throttle := ratelimit.NewThrottle(domain.PlatformReddit, cfg.Delay(), RequestsPerMinute, RequestsPerHour)
	return &Adapter{
		cfg:      cfg,
		client:   NewClient(id, secret, userAgent, throttle, timeout),
		throttle: throttle,
		hasCreds: okID && okSecret,
		now:      time.Now,
	}, nil
}

// NewWithClient creates an adapter around an existing client and throttle.
func NewWithClient(cfg domain.SourceConfig, client *Client, throttle *ratelimit.Throttle) *Adapter {
	return &Adapter{
		cfg:      cfg,
		client:   client,
		throttle: throttle,
		hasCreds: true,
		now:      time.Now,
	}
}

// Platform returns the Reddit platform identifier.
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformReddit
}

// Authenticate obtains an app-only token and performs a minimal read.
func (a *Adapter) Authenticate(ctx context.Context) bool {
	if !a.hasCreds {
		logger.Warn("reddit: %s and %s are required", ClientIDEnv, ClientSecretEnv)
		return false
	}
	if err := a.client.CheckAccess(ctx); err != nil {
		logger.Warn("reddit: authentication failed: %v", err)
		return false
	}
	logger.Debug("reddit: read-only access confirmed")
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

type searchRun struct {
	ctx        context.Context
	client     *Client
	limit      int
	results    []domain.RawResult
	users      map[string]*User
	stopped    bool
	callErrors int
}

// Search looks for matching posts in each selected subreddit and records
// every post author followed by up to five top commenters.
func (a *Adapter) Search(ctx context.Context, query string, filters map[string]any) []domain.RawResult {
	start := a.now()
	f := ParseFilters(filters, a.cfg.MaxResults)
	text, fromQuery := SplitQuery(query)

	run := &searchRun{
		ctx:    ctx,
		client: a.client,
		limit:  f.Limit,
		users:  make(map[string]*User),
	}
	for _, sub := range f.SubredditList(fromQuery) {
		if run.done() {
			break
		}
		run.searchSubreddit(sub, text, f)
	}

	success := run.callErrors == 0 || len(run.results) > 0
	a.stats.Record(len(run.results), a.now().Sub(start), success, run.callErrors)
	logger.Debug("reddit: %q returned %d records (%d call errors)", query, len(run.results), run.callErrors)
	return run.results
}

func (r *searchRun) done() bool {
	return r.stopped || r.ctx.Err() != nil || (r.limit > 0 && len(r.results) >= r.limit)
}

func (r *searchRun) absorb(what string, err error) bool {
	if err == nil {
		return false
	}
	if ratelimit.IsRateLimited(err) {
		logger.Warn("reddit: %s: %v; returning partial results", what, err)
		r.callErrors++
		r.stopped = true
		return true
	}
	r.callErrors++
	logger.Warn("reddit: %s: %v", what, err)
	return r.ctx.Err() != nil
}

func (r *searchRun) user(name string) *User {
	if u, ok := r.users[name]; ok {
		return u
	}
	u, err := r.client.User(r.ctx, name)
	if r.absorb("get user "+name, err) || u == nil {
		return nil
	}
	r.users[name] = u
	return u
}

func (r *searchRun) add(author, subreddit string, activity map[string]any) {
	if deleted(author) || r.done() {
		return
	}
	u := r.user(author)
	if u == nil || r.done() {
		return
	}
	record := userRecord(u, subreddit)
	record["context"] = activity
	r.results = append(r.results, record)
}

func (r *searchRun) searchSubreddit(sub, text string, f Filters) {
	posts, err := r.client.SearchPosts(r.ctx, sub, text, f.Sort, f.TimeFilter, f.PostsPerSubreddit)
	if r.absorb("search r/"+sub, err) {
		return
	}

	for _, post := range posts {
		if r.done() {
			return
		}
		postURL := "https://reddit.com" + post.Permalink

		r.add(post.Author, sub, map[string]any{
			"post_title":   post.Title,
			"post_url":     postURL,
			"post_score":   post.Score,
			"subreddit":    sub,
			"activity_utc": post.CreatedUTC,
		})

		if r.done() {
			return
		}
		comments, err := r.client.TopComments(r.ctx, post.ID, CommentsPerPost)
		if r.absorb("comments "+post.ID, err) {
			return
		}
		for _, c := range comments {
			r.add(c.Author, sub, map[string]any{
				"comment_text":  truncate(c.Body, CommentTextLimit),
				"comment_score": c.Score,
				"post_title":    post.Title,
				"post_url":      postURL,
				"subreddit":     sub,
				"activity_utc":  c.CreatedUTC,
			})
		}
	}
}

func userRecord(u *User, subreddit string) domain.RawResult {
	r := domain.RawResult{
		"type":              "reddit_user",
		"username":          u.Name,
		"user_url":          "https://reddit.com/user/" + u.Name,
		"subreddit_context": subreddit,
		"created_utc":       u.CreatedUTC,
		"comment_karma":     u.CommentKarma,
		"link_karma":        u.LinkKarma,
		"is_verified":       u.Verified,
		"has_premium":       u.IsGold,
	}
	if u.Subreddit != nil {
		r["profile_title"] = u.Subreddit.Title
		r["profile_description"] = u.Subreddit.PublicDescription
	}
	return r
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
