package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/prospector/internal/connectors/ratelimit"
	"github.com/custodia-labs/prospector/internal/core/domain"
)

const (
	// TokenURL is the application-only token endpoint.
	TokenURL = "https://www.reddit.com/api/v1/access_token"

	// APIBaseURL serves authenticated API requests.
	APIBaseURL = "https://oauth.reddit.com"

	// DefaultTimeout bounds one HTTP request.
	DefaultTimeout = 30 * time.Second
)

// Client is a minimal Reddit API client.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	throttle  *ratelimit.Throttle
}

// userAgentTransport sets the User-Agent Reddit requires on every request,
// including token requests.
type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// NewClient creates a client authenticating with the client-credentials grant.
func NewClient(clientID, clientSecret, userAgent string, throttle *ratelimit.Throttle, timeout time.Duration) *Client {
	base := &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{userAgent: userAgent, base: http.DefaultTransport},
	}

	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	httpClient := cfg.Client(ctx)
	httpClient.Timeout = timeout

	return &Client{
		http:      httpClient,
		baseURL:   APIBaseURL,
		userAgent: userAgent,
		throttle:  throttle,
	}
}

// NewClientWithHTTPClient creates a client against baseURL using httpClient
// as-is. Used by tests.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, userAgent string, throttle *ratelimit.Throttle) *Client {
	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		throttle:  throttle,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	err = c.throttle.GetJSON(c.http, req, out)

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return &ratelimit.APIError{
			Platform:   domain.PlatformReddit,
			StatusCode: retrieveErr.Response.StatusCode,
			Message:    "token request rejected",
			URL:        TokenURL,
		}
	}
	return err
}

// CheckAccess issues a minimal listing request to prove the credentials work.
func (c *Client) CheckAccess(ctx context.Context) error {
	var l listing
	return c.get(ctx, "/r/test/hot", url.Values{"limit": {"1"}}, &l)
}

// SearchPosts searches one subreddit for posts in the given time window.
func (c *Client) SearchPosts(ctx context.Context, subreddit, query, sort, timeFilter string, limit int) ([]Post, error) {
	q := url.Values{
		"q":           {query},
		"restrict_sr": {"1"},
		"t":           {timeFilter},
		"limit":       {strconv.Itoa(limit)},
		"raw_json":    {"1"},
	}
	if sort != "" {
		q.Set("sort", sort)
	}

	var l listing
	if err := c.get(ctx, "/r/"+url.PathEscape(subreddit)+"/search", q, &l); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		if child.Kind != kindPost {
			continue
		}
		var p Post
		if err := child.decode(&p); err == nil {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

// TopComments returns up to limit top-level comments of a post, best first.
func (c *Client) TopComments(ctx context.Context, postID string, limit int) ([]Comment, error) {
	q := url.Values{
		"limit":    {strconv.Itoa(limit)},
		"depth":    {"1"},
		"sort":     {"top"},
		"raw_json": {"1"},
	}

	// The response is [post listing, comment listing].
	var listings []listing
	if err := c.get(ctx, "/comments/"+url.PathEscape(postID), q, &listings); err != nil {
		return nil, err
	}
	if len(listings) < 2 {
		return nil, nil
	}

	var comments []Comment
	for _, child := range listings[1].Data.Children {
		if child.Kind != kindComment {
			continue
		}
		var cm Comment
		if err := child.decode(&cm); err == nil {
			comments = append(comments, cm)
		}
		if len(comments) >= limit {
			break
		}
	}
	return comments, nil
}

// User fetches a redditor's public profile.
func (c *Client) User(ctx context.Context, name string) (*User, error) {
	var t thing
	if err := c.get(ctx, "/user/"+url.PathEscape(name)+"/about", url.Values{"raw_json": {"1"}}, &t); err != nil {
		return nil, err
	}
	var u User
	if err := t.decode(&u); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", name, err)
	}
	return &u, nil
}
