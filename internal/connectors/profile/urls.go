package profile

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

var profilePatterns = map[domain.Platform]string{
	domain.PlatformTwitter: "https://twitter.com/%s",
	domain.PlatformGitHub:  "https://github.com/%s",
	domain.PlatformReddit:  "https://www.reddit.com/user/%s",
}

// URL returns the public profile URL for a handle on platform, or "" when
// the handle is empty or the platform has no profile pattern.
func URL(platform domain.Platform, handle string) string {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	pattern, ok := profilePatterns[platform]
	if handle == "" || !ok {
		return ""
	}
	return fmt.Sprintf(pattern, handle)
}

// Website normalises a free-form homepage value into an absolute URL.
func Website(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
