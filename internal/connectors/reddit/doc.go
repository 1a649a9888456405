// Package reddit finds prospects among the authors and top commenters of
// recent posts in business and technology subreddits. It authenticates with
// an application-only OAuth2 client-credentials grant.
package reddit
