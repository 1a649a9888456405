// Package profile holds the best-effort free-text heuristics the platform
// connectors use to pull a job title and company out of bios, plus the
// canonical profile URL patterns for each platform.
//
// Every function is pure and total: unparseable input yields "", never a
// panic.
package profile
