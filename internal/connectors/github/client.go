package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/prospector/internal/connectors/ratelimit"
	"github.com/custodia-labs/prospector/internal/core/domain"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client wraps the go-github client. Every call waits on the throttle first
// and feeds the response back into it.
type Client struct {
	gh       *gh.Client
	throttle *ratelimit.Throttle
}

// NewClient creates a GitHub API client. An empty token yields an
// unauthenticated client with the reduced public quota.
func NewClient(token string, throttle *ratelimit.Throttle, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = timeout

	return &Client{gh: gh.NewClient(hc), throttle: throttle}
}

// NewClientWithHTTPClient creates a client against baseURL using httpClient.
// Used by tests to point at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, throttle *ratelimit.Throttle) (*Client, error) {
	c := gh.NewClient(httpClient)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}
		c.BaseURL = u
	}
	return &Client{gh: c, throttle: throttle}, nil
}

// call runs fn under the throttle and normalises its error.
func (c *Client) call(ctx context.Context, fn func() (*gh.Response, error)) error {
	if err := c.throttle.Wait(ctx); err != nil {
		return err
	}

	resp, err := fn()
	if resp != nil {
		if obsErr := c.throttle.Observe(resp.Response); obsErr != nil {
			return obsErr
		}
	}
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		c.throttle.MarkExhausted(rateErr.Rate.Reset.Time)
		return &ratelimit.RateLimitError{
			Platform:  domain.PlatformGitHub,
			ResetAt:   rateErr.Rate.Reset.Time,
			Remaining: rateErr.Rate.Remaining,
			Limit:     rateErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &ratelimit.RateLimitError{
			Platform: domain.PlatformGitHub,
			ResetAt:  time.Now().Add(abuseErr.GetRetryAfter()),
		}
	}

	return fmt.Errorf("github: %w", err)
}

// AuthenticatedUser returns the user owning the token.
func (c *Client) AuthenticatedUser(ctx context.Context) (*gh.User, error) {
	var user *gh.User
	err := c.call(ctx, func() (*gh.Response, error) {
		u, resp, err := c.gh.Users.Get(ctx, "")
		user = u
		return resp, err
	})
	return user, err
}

// CheckReachable fetches the rate limit status, which needs no credentials.
func (c *Client) CheckReachable(ctx context.Context) error {
	return c.call(ctx, func() (*gh.Response, error) {
		_, resp, err := c.gh.RateLimit.Get(ctx)
		return resp, err
	})
}

// SearchRepositories searches repositories sorted by stars.
func (c *Client) SearchRepositories(ctx context.Context, query string, perPage int) ([]*gh.Repository, error) {
	var repos []*gh.Repository
	err := c.call(ctx, func() (*gh.Response, error) {
		result, resp, err := c.gh.Search.Repositories(ctx, query, &gh.SearchOptions{
			Sort:        "stars",
			Order:       "desc",
			ListOptions: gh.ListOptions{PerPage: perPage},
		})
		if result != nil {
			repos = result.Repositories
		}
		return resp, err
	})
	return repos, err
}

// ListContributors returns up to limit contributors of owner/repo.
func (c *Client) ListContributors(ctx context.Context, owner, repo string, limit int) ([]*gh.Contributor, error) {
	var contributors []*gh.Contributor
	err := c.call(ctx, func() (*gh.Response, error) {
		list, resp, err := c.gh.Repositories.ListContributors(ctx, owner, repo, &gh.ListContributorsOptions{
			ListOptions: gh.ListOptions{PerPage: limit},
		})
		contributors = list
		return resp, err
	})
	if len(contributors) > limit {
		contributors = contributors[:limit]
	}
	return contributors, err
}

// GetUser returns full profile details for login.
func (c *Client) GetUser(ctx context.Context, login string) (*gh.User, error) {
	var user *gh.User
	err := c.call(ctx, func() (*gh.Response, error) {
		u, resp, err := c.gh.Users.Get(ctx, login)
		user = u
		return resp, err
	})
	return user, err
}

// SearchUsers searches users with the given sort key.
func (c *Client) SearchUsers(ctx context.Context, query, sort string, perPage int) ([]*gh.User, error) {
	var users []*gh.User
	err := c.call(ctx, func() (*gh.Response, error) {
		result, resp, err := c.gh.Search.Users(ctx, query, &gh.SearchOptions{
			Sort:        sort,
			Order:       "desc",
			ListOptions: gh.ListOptions{PerPage: perPage},
		})
		if result != nil {
			users = result.Users
		}
		return resp, err
	})
	return users, err
}

// ListPublicMembers returns up to limit public members of org.
func (c *Client) ListPublicMembers(ctx context.Context, org string, limit int) ([]*gh.User, error) {
	var members []*gh.User
	err := c.call(ctx, func() (*gh.Response, error) {
		list, resp, err := c.gh.Organizations.ListMembers(ctx, org, &gh.ListMembersOptions{
			PublicOnly:  true,
			ListOptions: gh.ListOptions{PerPage: limit},
		})
		members = list
		return resp, err
	})
	if len(members) > limit {
		members = members[:limit]
	}
	return members, err
}
