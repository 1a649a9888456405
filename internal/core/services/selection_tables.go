package services

import "github.com/custodia-labs/prospector/internal/core/domain"

// SelectionTables holds the lookup tables that drive source selection and
// query generation.
type SelectionTables struct {
	// IndustryPlatforms lists the platforms favoured by each industry.
	IndustryPlatforms map[string][]domain.Platform

	// RolePlatforms lists the platforms favoured by each role.
	RolePlatforms map[string][]domain.Platform

	// SizePlatforms lists the platforms favoured by each company size.
	SizePlatforms map[string][]domain.Platform

	// IndustrySynonyms expand an industry into extra query terms.
	IndustrySynonyms map[string][]string

	// RoleSynonyms expand a role into extra query terms.
	RoleSynonyms map[string][]string

	// SizeTerms turn a company size into query terms.
	SizeTerms map[string][]string

	// MaxResults and Delays override the per-platform defaults.
	MaxResults map[domain.Platform]int
	Delays     map[domain.Platform]float64
}

// Selection scoring weights.
const (
	industryPoints = 3
	rolePoints     = 2
	sizePoints     = 1
	baselinePoints = 2
)

// DefaultSelectionTables returns the built-in tables.
func DefaultSelectionTables() SelectionTables {
	const (
		tw = domain.PlatformTwitter
		rd = domain.PlatformReddit
		gh = domain.PlatformGitHub
		yt = domain.PlatformYouTube
		so = domain.PlatformStackOverflow
		hn = domain.PlatformHackerNews
		md = domain.PlatformMedium
		ph = domain.PlatformProductHunt
		cb = domain.PlatformCrunchbase
		al = domain.PlatformAngelList
		jb = domain.PlatformJobBoards
		eb = domain.PlatformEventbrite
		mu = domain.PlatformMeetup
		gs = domain.PlatformGoogleSearch
	)

	return SelectionTables{
		IndustryPlatforms: map[string][]domain.Platform{
			"technology": {gh, so, hn, tw, ph},
			"software":   {gh, so, tw, ph, hn},
			"saas":       {tw, ph, cb, hn, gh},
			"ecommerce":  {tw, rd, yt, cb},
			"healthcare": {tw, md, eb, mu},
			"finance":    {tw, md, hn, cb},
			"marketing":  {tw, md, yt, ph},
			"consulting": {tw, md, eb, mu},
		},
		RolePlatforms: map[string][]domain.Platform{
			"developer": {gh, so, hn, tw},
			"engineer":  {gh, so, tw, hn},
			"founder":   {tw, cb, ph, hn},
			"cto":       {tw, gh, hn, so},
			"marketing": {tw, md, yt, ph},
			"sales":     {tw, cb, eb, mu},
		},
		SizePlatforms: map[string][]domain.Platform{
			SizeStartup:    {cb, al, ph, hn, tw},
			SizeSmall:      {tw, mu, eb, cb},
			SizeEnterprise: {tw, eb, cb, jb},
		},
		IndustrySynonyms: map[string][]string{
			"technology": {"tech", "software", "digital"},
			"saas":       {"software", "cloud", "platform"},
			"ecommerce":  {"retail", "online", "marketplace"},
		},
		RoleSynonyms: map[string][]string{
			"developer": {"engineer", "programmer", "dev"},
			"founder":   {"ceo", "entrepreneur", "startup"},
		},
		SizeTerms: map[string][]string{
			SizeStartup:    {"startup", "early-stage", "seed"},
			SizeEnterprise: {"enterprise", "corporation", "large"},
		},
		MaxResults: map[domain.Platform]int{
			tw: 100, gh: 50, rd: 75, so: 50, ph: 30, cb: 25, gs: 50,
		},
		Delays: map[domain.Platform]float64{
			tw: 2.0, gh: 1.0, rd: 1.5, so: 1.0, ph: 1.5, cb: 3.0, gs: 1.0,
		},
	}
}

func (t SelectionTables) maxResults(p domain.Platform) int {
	if n, ok := t.MaxResults[p]; ok {
		return n
	}
	return domain.DefaultMaxResults
}

func (t SelectionTables) delay(p domain.Platform) float64 {
	if d, ok := t.Delays[p]; ok {
		return d
	}
	return domain.DefaultRateLimitDelay
}
