package domain

// EnrichedProspect pairs a prospect with text scraped from its web presence.
type EnrichedProspect struct {
	Prospect Prospect `json:"prospect"`

	// URL is the page that was scraped.
	URL string `json:"url"`

	// PageContent is the scraped page converted to plain markdown text.
	PageContent string `json:"page_content"`
}

// Outreach is one personalised message produced by the outreach generator.
type Outreach struct {
	ProspectName string `json:"prospect_name"`
	SourceURL    string `json:"source_url"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
}

// EnrichmentResult is returned by one enrichment pass.
type EnrichmentResult struct {
	Enriched []EnrichedProspect `json:"enriched"`
	Outreach []Outreach         `json:"outreach,omitempty"`

	// Excluded lists source URLs of prospects whose page could not be scraped.
	Excluded []string `json:"excluded,omitempty"`
}
