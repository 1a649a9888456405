// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PlatformAdapter: Searches one external platform for prospects
//   - AdapterFactory: Creates adapters from a SourceConfig
//   - CredentialSource: Platform tokens and keys
//   - SourceConfigStore: Per-platform operational configuration
//   - ConfigStore: Application settings
//
// # Pluggable Policies
//
// Defaults live in internal/core/services; deployments may replace them:
//
//   - ICPMatcher, AccessibilityEstimator, BuyingSignalDetector: Lead sub-scores
//   - DuplicateMatcher, ProspectMerger: Deduplication policies
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PageScraper: Fetches page text for enrichment. Without it, enrichment is disabled.
//   - OutreachGenerator: Batch personalisation. Without it, enrichment stops after scraping.
//   - PromptStore: User-editable outreach prompts. Without it, built-in prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
