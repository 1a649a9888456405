// Package github implements the prospect adapter for GitHub.
//
// A search runs three sub-searches in a fixed order and concatenates their
// records: repositories (sorted by stars, with up to five contributors and
// the owning user of each), users (sorted by followers) and organisations
// (with up to ten public members each). Profile details are fetched once per
// login per search.
//
// # Authentication
//
// GITHUB_TOKEN is optional. With a token the adapter uses the authenticated
// quota (5,000 requests per hour) and Authenticate checks the token against
// the /user endpoint. Without one it runs against the public quota (60 per
// hour) and Authenticate only checks reachability.
//
// # Rate Limiting
//
// Every call waits on the adapter's throttle, spaced by the source's
// rate_limit_delay. A 429, a 403 with no remaining quota, or a go-github
// rate-limit error stops the current search; the records gathered so far
// are returned and no retry is attempted.
//
// # Filters
//
//   - language, min_stars: applied to the repository search
//   - location, min_followers: applied to the user search
//   - result_limit: stop once this many records are collected
package github
