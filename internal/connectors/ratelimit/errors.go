package ratelimit

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// RateLimitError reports that a platform signalled quota exhaustion.
type RateLimitError struct {
	Platform  domain.Platform
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return fmt.Sprintf("%s: rate limit exceeded", e.Platform)
	}
	return fmt.Sprintf("%s: rate limit exceeded, resets at %s", e.Platform, e.ResetAt.Format(time.RFC3339))
}

// Is makes errors.Is(err, domain.ErrRateLimited) hold.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// APIError represents a non-throttling error response from a platform API.
type APIError struct {
	Platform   domain.Platform
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error %d: %s (URL: %s)", e.Platform, e.StatusCode, e.Message, e.URL)
}

// Is maps 401 responses to domain.ErrAuthInvalid.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrAuthInvalid && e.StatusCode == http.StatusUnauthorized
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}
