// Package twitter finds prospects among the authors of recent tweets using
// the X (Twitter) API v2 with an application bearer token.
package twitter
