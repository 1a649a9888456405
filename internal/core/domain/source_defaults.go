package domain

// DefaultSourceConfigs returns the built-in configuration for every known
// platform, in canonical order.
func DefaultSourceConfigs() []SourceConfig {
	type row struct {
		priority   int
		maxResults int
		delay      float64
		enabled    bool
		params     map[string]any
	}
	table := map[Platform]row{
		PlatformGoogleSearch: {8, 50, 1.0, true, nil},
		PlatformTwitter: {7, 100, 2.0, true, map[string]any{
			"verified_only": false, "min_followers": 50,
		}},
		PlatformGitHub: {6, 50, 1.0, true, map[string]any{
			"sort": "stars", "order": "desc",
		}},
		PlatformReddit: {5, 75, 1.5, true, map[string]any{
			"sort": "hot", "time_filter": "month",
		}},
		PlatformStackOverflow: {6, 50, 1.0, true, map[string]any{
			"min_reputation": 500, "sort": "votes",
		}},
		PlatformHackerNews: {5, 40, 1.0, true, nil},
		PlatformProductHunt: {4, 30, 1.5, true, map[string]any{
			"featured_only": false,
		}},
		PlatformCrunchbase: {6, 25, 3.0, true, map[string]any{
			"funding_stages": []any{"seed", "series-a", "series-b"},
		}},
		PlatformMedium:     {4, 40, 1.5, true, nil},
		PlatformEventbrite: {3, 30, 2.0, true, nil},
		PlatformMeetup:     {3, 30, 2.0, true, nil},
		PlatformYouTube:    {4, 40, 1.5, false, nil},
		PlatformDiscord:    {3, 25, 2.0, false, nil},
		PlatformSubstack:   {3, 30, 1.5, false, nil},
		PlatformAngelList:  {4, 25, 2.0, false, nil},
		PlatformJobBoards: {5, 50, 3.0, true, map[string]any{
			"boards": []any{"linkedin", "indeed", "glassdoor"},
		}},
	}

	out := make([]SourceConfig, 0, len(allPlatforms))
	for _, p := range allPlatforms {
		r := table[p]
		params := r.params
		if params == nil {
			params = map[string]any{}
		}
		out = append(out, SourceConfig{
			Platform:         p,
			Priority:         r.priority,
			MaxResults:       r.maxResults,
			SearchParameters: params,
			RateLimitDelay:   r.delay,
			Enabled:          r.enabled,
		})
	}
	return out
}
