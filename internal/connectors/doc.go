// Package connectors holds the platform adapters that search external
// services for prospects. Each adapter implements driven.PlatformAdapter and
// is registered with the services.AdapterRegistry under its platform.
//
// Shared helpers live in sub-packages: ratelimit for request spacing and
// typed API errors, profile for title and company heuristics.
package connectors
