package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/prospector/internal/connectors/ratelimit"
	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/logger"
)

// Ensure Adapter implements the interface.
var _ driven.PlatformAdapter = (*Adapter)(nil)

// TokenEnv is the credential key for the personal access token.
const TokenEnv = "GITHUB_TOKEN"

// Published API quotas.
const (
	AuthRequestsPerMinute = 60
	AuthRequestsPerHour   = 5000
	AnonRequestsPerMinute = 10
	AnonRequestsPerHour   = 60
)

// Adapter finds developers on GitHub through repository, user and
// organisation search.
type Adapter struct {
	cfg           domain.SourceConfig
	client        *Client
	throttle      *ratelimit.Throttle
	authenticated bool
	stats         ratelimit.Stats
	now           func() time.Time
}

// New creates a GitHub adapter. Without GITHUB_TOKEN it runs unauthenticated
// with the public quota.
func New(cfg domain.SourceConfig, creds driven.CredentialSource) (driven.PlatformAdapter, error) {
	return NewWithTimeout(cfg, creds, DefaultTimeout)
}

// NewWithTimeout is New with a custom per-request timeout.
func NewWithTimeout(cfg domain.SourceConfig, creds driven.CredentialSource, timeout time.Duration) (driven.PlatformAdapter, error) {
	token, ok := creds.Lookup(TokenEnv)
	throttle := newThrottle(cfg, ok)
	return &Adapter{
		cfg:           cfg,
		client:        NewClient(token, throttle, timeout),
		throttle:      throttle,
		authenticated: ok,
		now:           time.Now,
	}, nil
}

// NewWithClient creates an adapter around an existing client and throttle.
func NewWithClient(cfg domain.SourceConfig, client *Client, throttle *ratelimit.Throttle, authenticated bool) *Adapter {
	return &Adapter{
		cfg:           cfg,
		client:        client,
		throttle:      throttle,
		authenticated: authenticated,
		now:           time.Now,
	}
}

func newThrottle(cfg domain.SourceConfig, authenticated bool) *ratelimit.Throttle {
	if authenticated {
		return ratelimit.NewThrottle(domain.PlatformGitHub, cfg.Delay(), AuthRequestsPerMinute, AuthRequestsPerHour)
	}
	return ratelimit.NewThrottle(domain.PlatformGitHub, cfg.Delay(), AnonRequestsPerMinute, AnonRequestsPerHour)
}

// Platform returns the GitHub platform identifier.
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformGitHub
}

// Authenticate verifies the token, or public API reachability without one.
func (a *Adapter) Authenticate(ctx context.Context) bool {
	if !a.authenticated {
		if err := a.client.CheckReachable(ctx); err != nil {
			logger.Warn("github: API unreachable: %v", err)
			return false
		}
		logger.Info("github: no %s set, using unauthenticated quota", TokenEnv)
		return true
	}

	user, err := a.client.AuthenticatedUser(ctx)
	if err != nil {
		if ratelimit.IsUnauthorized(err) {
			logger.Warn("github: token rejected: %v", err)
		} else {
			logger.Warn("github: authentication failed: %v", err)
		}
		return false
	}
	logger.Debug("github: authenticated as %s", user.GetLogin())
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

// searchRun carries the state of one Search invocation.
type searchRun struct {
	ctx        context.Context
	client     *Client
	limit      int
	results    []domain.RawResult
	users      map[string]*gh.User
	stopped    bool
	callErrors int
}

// Search runs the repository, user and organisation sub-searches in that
// fixed order and concatenates their records. A quota signal stops all
// remaining calls and returns the partial result.
func (a *Adapter) Search(ctx context.Context, query string, filters map[string]any) []domain.RawResult {
	start := a.now()
	f := ParseFilters(filters, a.cfg.MaxResults)

	run := &searchRun{
		ctx:    ctx,
		client: a.client,
		limit:  f.Limit,
		users:  make(map[string]*gh.User),
	}

	run.searchRepositories(f.RepositoryQuery(query))
	run.searchUsers(f.UserQuery(query))
	run.searchOrganizations(f.OrgQuery(query))

	success := run.callErrors == 0 || len(run.results) > 0
	a.stats.Record(len(run.results), a.now().Sub(start), success, run.callErrors)
	logger.Debug("github: %q returned %d records (%d call errors)", query, len(run.results), run.callErrors)
	return run.results
}

// done reports whether no further calls should be issued.
func (r *searchRun) done() bool {
	return r.stopped || r.ctx.Err() != nil || (r.limit > 0 && len(r.results) >= r.limit)
}

// absorb logs err and reports whether the caller should abandon its loop.
func (r *searchRun) absorb(what string, err error) bool {
	if err == nil {
		return false
	}
	if ratelimit.IsRateLimited(err) {
		logger.Warn("github: %s: %v; returning partial results", what, err)
		r.callErrors++
		r.stopped = true
		return true
	}
	r.callErrors++
	logger.Warn("github: %s: %v", what, err)
	return r.ctx.Err() != nil
}

// user fetches profile details once per login per search.
func (r *searchRun) user(login string) *gh.User {
	if u, ok := r.users[login]; ok {
		return u
	}
	u, err := r.client.GetUser(r.ctx, login)
	if r.absorb("get user "+login, err) || u == nil {
		return nil
	}
	r.users[login] = u
	return u
}

func (r *searchRun) add(u *gh.User, extra domain.RawResult) {
	if u == nil || r.done() {
		return
	}
	record := userRecord(u)
	for k, v := range extra {
		record[k] = v
	}
	r.results = append(r.results, record)
}

func (r *searchRun) searchRepositories(query string) {
	if r.done() {
		return
	}
	repos, err := r.client.SearchRepositories(r.ctx, query, ReposPerSearch)
	if r.absorb("search repositories", err) {
		return
	}

	for _, repo := range repos {
		if r.done() {
			return
		}
		owner := repo.GetOwner().GetLogin()
		repoCtx := map[string]any{
			"repository": repo.GetFullName(),
			"stars":      repo.GetStargazersCount(),
			"language":   repo.GetLanguage(),
		}

		contributors, err := r.client.ListContributors(r.ctx, owner, repo.GetName(), MaxContributorsPerRepo)
		if r.absorb("list contributors "+repo.GetFullName(), err) {
			return
		}
		for _, c := range contributors {
			if r.done() {
				return
			}
			login := c.GetLogin()
			if login == "" || login == owner {
				continue
			}
			r.add(r.user(login), domain.RawResult{
				"contributions":      c.GetContributions(),
				"repository_context": withRole(repoCtx, "contributor"),
			})
		}

		if owner != "" && repo.GetOwner().GetType() != "Organization" {
			r.add(r.user(owner), domain.RawResult{
				"repository_context": withRole(repoCtx, "owner"),
			})
		}
	}
}

func (r *searchRun) searchUsers(query string) {
	if r.done() {
		return
	}
	users, err := r.client.SearchUsers(r.ctx, query, "followers", UsersPerSearch)
	if r.absorb("search users", err) {
		return
	}
	for _, u := range users {
		if r.done() {
			return
		}
		r.add(r.user(u.GetLogin()), domain.RawResult{
			"search_context": "direct_user_search",
		})
	}
}

func (r *searchRun) searchOrganizations(query string) {
	if r.done() {
		return
	}
	orgs, err := r.client.SearchUsers(r.ctx, query, "repositories", OrgsPerSearch)
	if r.absorb("search organizations", err) {
		return
	}
	for _, org := range orgs {
		if r.done() {
			return
		}
		members, err := r.client.ListPublicMembers(r.ctx, org.GetLogin(), MaxMembersPerOrg)
		if r.absorb("list members "+org.GetLogin(), err) {
			return
		}
		for _, m := range members {
			if r.done() {
				return
			}
			r.add(r.user(m.GetLogin()), domain.RawResult{
				"organization_context": map[string]any{
					"organization": org.GetLogin(),
					"url":          org.GetHTMLURL(),
				},
			})
		}
	}
}

func withRole(repoContext map[string]any, role string) map[string]any {
	out := make(map[string]any, len(repoContext)+1)
	for k, v := range repoContext {
		out[k] = v
	}
	out["role"] = role
	return out
}

// userRecord flattens profile details into a raw record.
func userRecord(u *gh.User) domain.RawResult {
	r := domain.RawResult{
		"username":         u.GetLogin(),
		"name":             u.GetName(),
		"email":            u.GetEmail(),
		"bio":              u.GetBio(),
		"company":          u.GetCompany(),
		"location":         u.GetLocation(),
		"blog":             u.GetBlog(),
		"twitter_username": u.GetTwitterUsername(),
		"public_repos":     u.GetPublicRepos(),
		"followers":        u.GetFollowers(),
		"following":        u.GetFollowing(),
		"html_url":         u.GetHTMLURL(),
		"avatar_url":       u.GetAvatarURL(),
		"hireable":         u.GetHireable(),
	}
	if ts := u.GetCreatedAt(); !ts.IsZero() {
		r["created_at"] = ts.Format(time.RFC3339)
	}
	if ts := u.GetUpdatedAt(); !ts.IsZero() {
		r["updated_at"] = ts.Format(time.RFC3339)
	}
	return r
}
