// Package ratelimit provides the per-adapter request throttle shared by the
// platform connectors, along with the typed errors they report.
//
// A Throttle enforces a minimum spacing between one adapter's outbound
// requests. It does not coordinate across adapter instances or processes.
// Responses are fed back through Observe, which tracks quota headers and
// turns throttling responses into *RateLimitError so the caller can stop the
// current search and return what it has.
package ratelimit
