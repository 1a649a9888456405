package websearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"

	"github.com/custodia-labs/prospector/internal/connectors/ratelimit"
	"github.com/custodia-labs/prospector/internal/core/domain"
)

// MaxPageSize is the most results one CSE request returns.
const MaxPageSize = 10

// DefaultTimeout bounds one HTTP request.
const DefaultTimeout = 30 * time.Second

// Item is one search hit.
type Item struct {
	Title   string
	Link    string
	Snippet string
}

// Client wraps the Custom Search JSON API.
type Client struct {
	svc      *customsearch.Service
	engineID string
	throttle *ratelimit.Throttle
}

// NewClient creates a client for the given API key and engine ID. The key
// travels in a transport because a custom HTTP client replaces
// option.WithAPIKey. Extra options (endpoint, HTTP client) are appended.
func NewClient(
	ctx context.Context,
	apiKey, engineID string,
	throttle *ratelimit.Throttle,
	timeout time.Duration,
	opts ...option.ClientOption,
) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := &http.Client{
		Timeout:   timeout,
		Transport: &transport.APIKey{Key: apiKey, Transport: http.DefaultTransport},
	}
	all := append([]option.ClientOption{option.WithHTTPClient(hc)}, opts...)
	svc, err := customsearch.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("create custom search service: %w", err)
	}
	return &Client{svc: svc, engineID: engineID, throttle: throttle}, nil
}

// Search returns up to num items for query.
func (c *Client) Search(ctx context.Context, query string, num int) ([]Item, error) {
	if num <= 0 || num > MaxPageSize {
		num = MaxPageSize
	}
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := c.svc.Cse.List().Q(query).Cx(c.engineID).Num(int64(num)).Context(ctx).Do()
	if err != nil {
		err = classify(err)
		if ratelimit.IsRateLimited(err) {
			c.throttle.MarkExhausted(time.Time{})
		}
		return nil, err
	}

	items := make([]Item, 0, len(res.Items))
	for _, it := range res.Items {
		if it == nil {
			continue
		}
		items = append(items, Item{Title: it.Title, Link: it.Link, Snippet: it.Snippet})
	}
	return items, nil
}

// classify maps googleapi errors onto the shared error types. The daily
// query quota surfaces as 429, or as 403 with a rate-limit reason.
func classify(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("google_search: %w", err)
	}

	if apiErr.Code == http.StatusTooManyRequests || (apiErr.Code == http.StatusForbidden && quotaReason(apiErr)) {
		return &ratelimit.RateLimitError{Platform: domain.PlatformGoogleSearch}
	}
	return &ratelimit.APIError{
		Platform:   domain.PlatformGoogleSearch,
		StatusCode: apiErr.Code,
		Message:    apiErr.Message,
	}
}

func quotaReason(e *googleapi.Error) bool {
	for _, item := range e.Errors {
		switch item.Reason {
		case "rateLimitExceeded", "dailyLimitExceeded", "userRateLimitExceeded", "quotaExceeded":
			return true
		}
	}
	return false
}
