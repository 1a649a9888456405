package websearch

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/custodia-labs/prospector/internal/connectors/profile"
	"github.com/custodia-labs/prospector/internal/core/domain"
)

// Baseline engagement; a search hit carries no activity signal.
const (
	linkedInEngagement = 0.5
	webEngagement      = 0.3
)

// maxNameWords bounds what is accepted as a person's name.
const maxNameWords = 4

var (
	titleSiteSuffix = regexp.MustCompile(`\s*[-|–—]\s*(?:LinkedIn|Twitter|GitHub|Medium|Crunchbase)\b.*$`)
	titleSeparator  = regexp.MustCompile(`\s+[-–—|·]\s+`)
)

// ExtractProspects maps search hits to prospects. Hits whose title does not
// begin with a plausible personal name are skipped.
func (a *Adapter) ExtractProspects(raw []domain.RawResult) []domain.Prospect {
	prospects := make([]domain.Prospect, 0, len(raw))
	for _, r := range raw {
		if p, ok := extractProspect(r); ok {
			prospects = append(prospects, p)
		}
	}
	return prospects
}

func extractProspect(r domain.RawResult) (domain.Prospect, bool) {
	link := strings.TrimSpace(r.Str("link"))
	snippet := strings.TrimSpace(r.Str("snippet"))

	name, title, company := ParseTitle(r.Str("title"))
	if name == "" {
		return domain.Prospect{}, false
	}
	if title == "" {
		title = profile.Title(snippet, profile.BusinessTitles)
	}
	if company == "" {
		company = profile.Company(snippet)
	}

	p := domain.Prospect{
		Name:            name,
		Title:           title,
		Company:         company,
		Bio:             snippet,
		SourcePlatform:  domain.PlatformGoogleSearch,
		SourceURL:       link,
		EngagementScore: webEngagement,
		AdditionalData: map[string]any{
			"search_title": r.Str("title"),
		},
	}

	host := hostOf(link)
	switch {
	case strings.HasSuffix(host, "linkedin.com"):
		p.LinkedInURL = link
		p.EngagementScore = linkedInEngagement
	case host == "twitter.com" || host == "x.com":
		p.TwitterURL = link
	case host == "github.com":
		p.GitHubURL = link
	}
	if host != "" {
		p.AdditionalData["domain"] = host
	}

	p.ClampScores()
	return p, true
}

// ParseTitle splits a profile page title such as
// "Jane Doe - CTO - Acme | LinkedIn" into name, role and company. With two
// segments the second is a role when it contains a role keyword and a
// company otherwise. name is "" when the first segment is not a plausible
// personal name.
func ParseTitle(s string) (name, title, company string) {
	s = strings.TrimSpace(titleSiteSuffix.ReplaceAllString(s, ""))
	segments := titleSeparator.Split(s, -1)

	name = strings.TrimSpace(segments[0])
	if !plausibleName(name) {
		return "", "", ""
	}

	switch {
	case len(segments) >= 3:
		title = strings.TrimSpace(segments[1])
		company = strings.TrimSpace(segments[2])
	case len(segments) == 2:
		rest := strings.TrimSpace(segments[1])
		if profile.Title(rest, profile.BusinessTitles) != "" {
			title = rest
		} else {
			company = rest
		}
	}
	return name, title, company
}

// plausibleName accepts one to four capitalised words without digits.
func plausibleName(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 || len(words) > maxNameWords {
		return false
	}
	for _, w := range words {
		first := true
		for _, r := range w {
			if unicode.IsDigit(r) {
				return false
			}
			if first {
				if !unicode.IsUpper(r) {
					return false
				}
				first = false
			}
		}
	}
	return true
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
