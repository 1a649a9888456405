package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

const (
	// HeaderRateLimit is the quota size header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset header. GitHub and Twitter send a Unix
	// timestamp; Reddit sends seconds until reset.
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// Twitter spells the quota headers with an extra hyphen.
	altHeaderRateLimit     = "X-Rate-Limit-Limit"
	altHeaderRateRemaining = "X-Rate-Limit-Remaining"
	altHeaderRateReset     = "X-Rate-Limit-Reset"

	// relativeResetCutoff separates "seconds until reset" from Unix timestamps.
	relativeResetCutoff = 1_000_000_000
)

// Throttle spaces one adapter's outbound requests and tracks its quota.
type Throttle struct {
	platform domain.Platform
	bucket   *rate.Limiter

	mu        sync.Mutex
	info      domain.RateLimitInfo
	remaining int // -1 until a response reports it
	limit     int
}

// NewThrottle creates a throttle allowing one request per delay.
// The first request is never delayed. A non-positive delay disables spacing.
func NewThrottle(platform domain.Platform, delay time.Duration, perMinute, perHour int) *Throttle {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}

	return &Throttle{
		platform: platform,
		bucket:   rate.NewLimiter(limit, 1),
		info: domain.RateLimitInfo{
			RequestsPerMinute: perMinute,
			RequestsPerHour:   perHour,
			DelaySeconds:      delay.Seconds(),
		},
		remaining: -1,
		limit:     perHour,
	}
}

// Wait blocks until the minimum spacing since the previous request has
// elapsed, then counts the request.
func (t *Throttle) Wait(ctx context.Context) error {
	if err := t.bucket.Wait(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	t.info.CurrentUsage++
	t.mu.Unlock()
	return nil
}

// Observe updates quota state from response headers and classifies the
// status code. It returns *RateLimitError for 429, or 403 with no remaining
// quota, *APIError for any other status >= 400, and nil otherwise.
func (t *Throttle) Observe(resp *http.Response) error {
	if resp == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.updateFromHeaders(resp.Header)

	if resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && t.remaining == 0) {
		resetAt := time.Time{}
		if t.info.ResetTime != nil {
			resetAt = *t.info.ResetTime
		}

		if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				resetAt = time.Now().Add(time.Duration(seconds) * time.Second)
				t.info.ResetTime = &resetAt
			}
		}

		return &RateLimitError{
			Platform:  t.platform,
			ResetAt:   resetAt,
			Remaining: t.remaining,
			Limit:     t.limit,
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		url := ""
		if resp.Request != nil && resp.Request.URL != nil {
			url = resp.Request.URL.String()
		}
		return &APIError{
			Platform:   t.platform,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			URL:        url,
		}
	}

	return nil
}

// updateFromHeaders parses quota headers (caller must hold lock).
func (t *Throttle) updateFromHeaders(h http.Header) {
	// Reddit reports remaining as a float ("598.0").
	if remaining := header(h, HeaderRateRemaining, altHeaderRateRemaining); remaining != "" {
		if val, err := strconv.ParseFloat(remaining, 64); err == nil {
			t.remaining = int(val)
		}
	}

	if limit := header(h, HeaderRateLimit, altHeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			t.limit = val
		}
	}

	if reset := header(h, HeaderRateReset, altHeaderRateReset); reset != "" {
		if val, err := strconv.ParseFloat(reset, 64); err == nil {
			var resetAt time.Time
			if val < relativeResetCutoff {
				resetAt = time.Now().Add(time.Duration(val * float64(time.Second)))
			} else {
				resetAt = time.Unix(int64(val), 0)
			}
			t.info.ResetTime = &resetAt
		}
	}
}

func header(h http.Header, names ...string) string {
	for _, name := range names {
		if v := h.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// MarkExhausted records a quota reset reported outside response headers,
// e.g. by an SDK error value.
func (t *Throttle) MarkExhausted(resetAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = 0
	if !resetAt.IsZero() {
		t.info.ResetTime = &resetAt
	}
}

// Remaining returns the last reported remaining quota, or -1 if unknown.
func (t *Throttle) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Snapshot returns a copy of the current throttling state.
func (t *Throttle) Snapshot() domain.RateLimitInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	info := t.info
	if info.ResetTime != nil {
		reset := *info.ResetTime
		info.ResetTime = &reset
	}
	return info
}
