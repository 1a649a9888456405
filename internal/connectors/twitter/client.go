package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/prospector/internal/connectors/ratelimit"
)

const (
	// APIBaseURL is the v2 API root.
	APIBaseURL = "https://api.twitter.com/2"

	// DefaultTimeout bounds one HTTP request.
	DefaultTimeout = 30 * time.Second

	// probeUsername is looked up to verify an app-only token, which cannot
	// call users/me.
	probeUsername = "XDevelopers"

	tweetFields = "author_id,created_at,public_metrics,context_annotations"
	userFields  = "name,username,description,location,url,public_metrics,verified"
)

// Client is a minimal X API v2 client.
type Client struct {
	http     *http.Client
	baseURL  string
	throttle *ratelimit.Throttle
}

// NewClient creates a client sending token as an OAuth2 bearer.
func NewClient(token string, throttle *ratelimit.Throttle, timeout time.Duration) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	base := &http.Client{Timeout: timeout}
	httpClient := oauth2.NewClient(context.WithValue(context.Background(), oauth2.HTTPClient, base), ts)
	httpClient.Timeout = timeout

	return &Client{http: httpClient, baseURL: APIBaseURL, throttle: throttle}
}

// NewClientWithHTTPClient creates a client against baseURL using httpClient
// as-is. Used by tests.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, throttle *ratelimit.Throttle) *Client {
	return &Client{http: httpClient, baseURL: strings.TrimSuffix(baseURL, "/"), throttle: throttle}
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
	return c.throttle.GetJSON(c.http, req, out)
}

// CheckToken performs a cheap user lookup to validate the bearer token.
func (c *Client) CheckToken(ctx context.Context) error {
	var resp struct {
		Data User `json:"data"`
	}
	return c.get(ctx, "/users/by/username/"+probeUsername, nil, &resp)
}

// SearchRecent runs tweets/search/recent with the author expansion.
func (c *Client) SearchRecent(ctx context.Context, query string, maxResults int) (*SearchResponse, error) {
	q := url.Values{
		"query":        {query},
		"max_results":  {strconv.Itoa(maxResults)},
		"tweet.fields": {tweetFields},
		"user.fields":  {userFields},
		"expansions":   {"author_id"},
	}

	var resp SearchResponse
	if err := c.get(ctx, "/tweets/search/recent", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
