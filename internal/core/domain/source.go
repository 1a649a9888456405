package domain

import (
	"fmt"
	"time"
)

// Source configuration defaults.
const (
	DefaultPriority       = 5
	DefaultMaxResults     = 50
	DefaultRateLimitDelay = 1.0

	MinPriority = 1
	MaxPriority = 10
)

// SourceConfig is the operational configuration for one platform.
// It is owned by the source configuration store; adapters and the
// selection engine treat it as read-only.
type SourceConfig struct {
	Platform Platform `json:"platform"`

	// Priority is in [1,10]; higher is queried with more weight.
	Priority int `json:"priority"`

	// MaxResults caps the prospects returned per query.
	MaxResults int `json:"max_results"`

	// SearchParameters are platform-specific filters.
	SearchParameters map[string]any `json:"search_parameters"`

	// RateLimitDelay is the minimum spacing between outbound requests, in seconds.
	RateLimitDelay float64 `json:"rate_limit_delay"`

	Enabled bool `json:"enabled"`
}

// NewSourceConfig returns a config for p populated with the defaults.
func NewSourceConfig(p Platform) SourceConfig {
	return SourceConfig{
		Platform:         p,
		Priority:         DefaultPriority,
		MaxResults:       DefaultMaxResults,
		SearchParameters: map[string]any{},
		RateLimitDelay:   DefaultRateLimitDelay,
		Enabled:          true,
	}
}

// Validate checks the platform and priority invariants.
func (c *SourceConfig) Validate() error {
	if !c.Platform.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedPlatform, c.Platform)
	}
	if c.Priority < MinPriority || c.Priority > MaxPriority {
		return fmt.Errorf("%w: priority %d outside [%d,%d]", ErrInvalidInput, c.Priority, MinPriority, MaxPriority)
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("%w: max_results must not be negative", ErrInvalidInput)
	}
	if c.RateLimitDelay < 0 {
		return fmt.Errorf("%w: rate_limit_delay must not be negative", ErrInvalidInput)
	}
	return nil
}

// Delay returns RateLimitDelay as a duration.
func (c *SourceConfig) Delay() time.Duration {
	return time.Duration(c.RateLimitDelay * float64(time.Second))
}

// Search strategy defaults.
const (
	DefaultResultLimit      = 50
	DefaultQualityThreshold = 0.5
)

// FilterResultLimit is the filter key carrying the raw-result cap for one
// search call. Adapters stop issuing calls once they have this many records.
const FilterResultLimit = "result_limit"

// SearchStrategy is the query plan for one platform. A strategy is created
// fresh per selection call and is not modified once handed to an adapter.
type SearchStrategy struct {
	// PrimaryQueries are tried first, in order.
	PrimaryQueries []string `json:"primary_queries"`

	// FallbackQueries run only when the primary queries yield nothing.
	FallbackQueries []string `json:"fallback_queries"`

	// Filters are passed to the adapter's search call.
	Filters map[string]any `json:"filters"`

	ResultLimit      int     `json:"result_limit"`
	QualityThreshold float64 `json:"quality_threshold"`
}
