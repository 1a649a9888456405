package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedPlatform indicates a platform identifier outside the known set.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoAdapter indicates a known platform that has no adapter implementation.
	// Such platforms are skipped during a run rather than counted as failed.
	ErrNoAdapter = errors.New("no adapter for platform")

	// Authentication Errors.

	// ErrAuthRequired indicates the adapter requires credentials but none are configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the configured credentials were rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the platform signalled quota exhaustion.
	ErrRateLimited = errors.New("rate limited")

	// Run Errors.

	// ErrNoUsableSources indicates every attempted platform failed authentication,
	// or no selected platform had a usable adapter. It distinguishes a dead run
	// from one that simply found no matches.
	ErrNoUsableSources = errors.New("no usable sources")

	// Configuration Errors.

	// ErrConfigCorrupt indicates the persisted sources document could not be parsed.
	// The store regenerates defaults when it sees this.
	ErrConfigCorrupt = errors.New("configuration corrupt")

	// Enrichment Errors.

	// ErrScraperUnavailable indicates no page scraper is configured.
	ErrScraperUnavailable = errors.New("page scraper unavailable")

	// ErrGeneratorUnavailable indicates no outreach generator is configured.
	ErrGeneratorUnavailable = errors.New("outreach generator unavailable")
)
