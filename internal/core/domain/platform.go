package domain

import (
	"fmt"
	"strings"
)

// Platform identifies one external source of prospects.
// The set is closed; several members have no adapter implementation.
type Platform string

// Known platforms, in canonical order.
const (
	PlatformTwitter       Platform = "twitter"
	PlatformReddit        Platform = "reddit"
	PlatformGitHub        Platform = "github"
	PlatformYouTube       Platform = "youtube"
	PlatformStackOverflow Platform = "stack_overflow"
	PlatformHackerNews    Platform = "hacker_news"
	PlatformDiscord       Platform = "discord"
	PlatformMedium        Platform = "medium"
	PlatformSubstack      Platform = "substack"
	PlatformProductHunt   Platform = "product_hunt"
	PlatformCrunchbase    Platform = "crunchbase"
	PlatformAngelList     Platform = "angellist"
	PlatformJobBoards     Platform = "job_boards"
	PlatformEventbrite    Platform = "eventbrite"
	PlatformMeetup        Platform = "meetup"

	// PlatformGoogleSearch is the general web-search platform. Source selection
	// always awards it a baseline weight.
	PlatformGoogleSearch Platform = "google_search"
)

var allPlatforms = []Platform{
	PlatformTwitter,
	PlatformReddit,
	PlatformGitHub,
	PlatformYouTube,
	PlatformStackOverflow,
	PlatformHackerNews,
	PlatformDiscord,
	PlatformMedium,
	PlatformSubstack,
	PlatformProductHunt,
	PlatformCrunchbase,
	PlatformAngelList,
	PlatformJobBoards,
	PlatformEventbrite,
	PlatformMeetup,
	PlatformGoogleSearch,
}

// AllPlatforms returns every known platform in canonical order.
// The returned slice is a copy and may be modified by the caller.
func AllPlatforms() []Platform {
	out := make([]Platform, len(allPlatforms))
	copy(out, allPlatforms)
	return out
}

// Valid reports whether p is a member of the known platform set.
func (p Platform) Valid() bool {
	for _, known := range allPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// String returns the identifier.
func (p Platform) String() string {
	return string(p)
}

// ParsePlatform converts a user-supplied identifier into a Platform.
// Matching ignores case and surrounding whitespace.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, s)
	}
	return p, nil
}
