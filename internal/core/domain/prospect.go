package domain

import (
	"fmt"
	"time"
)

// Prospect is one normalised candidate lead discovered on a platform.
// Adapters create prospects; only deduplication (merge) and scoring
// (score fields) mutate them afterwards.
type Prospect struct {
	// Name is the person or entity name. Required.
	Name string `json:"name"`

	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`

	// Profile URLs.
	LinkedInURL string `json:"linkedin_url,omitempty"`
	TwitterURL  string `json:"twitter_url,omitempty"`
	GitHubURL   string `json:"github_url,omitempty"`
	Website     string `json:"website,omitempty"`

	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
	Industry string `json:"industry,omitempty"`

	// SourcePlatform is the platform whose adapter produced the record.
	SourcePlatform Platform `json:"source_platform"`

	// SourceURL is the canonical identifying URL. It is the default dedup key.
	SourceURL string `json:"source_url"`

	// EngagementScore is computed by the originating adapter, in [0,1].
	EngagementScore float64 `json:"engagement_score"`

	// RelevanceScore is the combined ICP-weighted score, in [0,1].
	RelevanceScore float64 `json:"relevance_score"`

	LastActivity *time.Time `json:"last_activity,omitempty"`

	// AdditionalData holds platform-specific fields for audit and debugging.
	// It never takes part in equality or matching.
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

// Validate checks the prospect invariants.
func (p *Prospect) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: prospect name is required", ErrInvalidInput)
	}
	return nil
}

// ClampScores forces both score fields into [0,1].
func (p *Prospect) ClampScores() {
	p.EngagementScore = Clamp01(p.EngagementScore)
	p.RelevanceScore = Clamp01(p.RelevanceScore)
}

// Clone returns a copy whose AdditionalData map and LastActivity are not
// shared with the original.
func (p Prospect) Clone() Prospect {
	if p.AdditionalData != nil {
		data := make(map[string]any, len(p.AdditionalData))
		for k, v := range p.AdditionalData {
			data[k] = v
		}
		p.AdditionalData = data
	}
	if p.LastActivity != nil {
		t := *p.LastActivity
		p.LastActivity = &t
	}
	return p
}

// PopulatedFields counts the non-empty optional string fields.
func (p *Prospect) PopulatedFields() int {
	n := 0
	for _, v := range []string{
		p.Title, p.Company, p.Email, p.LinkedInURL, p.TwitterURL,
		p.GitHubURL, p.Website, p.Bio, p.Location, p.Industry,
	} {
		if v != "" {
			n++
		}
	}
	return n
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
