package driven

import (
	"context"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// PlatformAdapter searches one external platform and normalises its results
// into prospects. Each implementation binds to exactly one SourceConfig and
// owns its own rate-limit and metrics state.
//
// Adapter-local failures never escape: they are absorbed and reflected only
// in return-value cardinality and in Metrics.
type PlatformAdapter interface {
	// Platform returns the platform this adapter serves.
	Platform() domain.Platform

	// Authenticate verifies credentials and reachability.
	// Expected failures (missing token, unauthorised) report false and are
	// logged; they never panic or return an error.
	Authenticate(ctx context.Context) bool

	// Search executes one or more platform-native calls for query and returns
	// the raw records. The rate limiter runs before every outbound call.
	// When the platform signals throttling the adapter stops issuing calls
	// for this invocation and returns what it has so far. It never retries.
	Search(ctx context.Context, query string, filters map[string]any) []domain.RawResult

	// ExtractProspects maps raw records to prospects. It performs no I/O.
	// Records that cannot be mapped are skipped.
	ExtractProspects(raw []domain.RawResult) []domain.Prospect

	// RateLimits returns a snapshot of the current throttling state.
	RateLimits() domain.RateLimitInfo

	// Metrics returns a snapshot of the adapter's performance counters.
	Metrics() domain.SourceMetrics
}

// AdapterFactory creates an adapter for a platform configuration.
// Credentials are looked up through creds; missing credentials degrade the
// adapter rather than failing construction.
type AdapterFactory func(cfg domain.SourceConfig, creds CredentialSource) (PlatformAdapter, error)

// CredentialSource resolves platform tokens and keys by name
// (e.g. GITHUB_TOKEN).
type CredentialSource interface {
	// Lookup returns the value for key and whether it is set and non-empty.
	Lookup(key string) (string, bool)
}
