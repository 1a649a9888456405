package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ScoringWeights are the linear weights combining the four lead sub-scores.
type ScoringWeights struct {
	ICP           float64 `json:"icp_weight"`
	Engagement    float64 `json:"engagement_weight"`
	Accessibility float64 `json:"accessibility_weight"`
	BuyingSignal  float64 `json:"buying_signal_weight"`
}

// DefaultScoringWeights returns the 0.40/0.25/0.20/0.15 split.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		ICP:           0.40,
		Engagement:    0.25,
		Accessibility: 0.20,
		BuyingSignal:  0.15,
	}
}

// Sum returns the total of all four weights.
func (w ScoringWeights) Sum() float64 {
	return w.ICP + w.Engagement + w.Accessibility + w.BuyingSignal
}

// Validate requires non-negative weights summing to 1.
func (w ScoringWeights) Validate() error {
	for _, v := range []float64{w.ICP, w.Engagement, w.Accessibility, w.BuyingSignal} {
		if v < 0 {
			return fmt.Errorf("%w: scoring weights must not be negative", ErrInvalidInput)
		}
	}
	if math.Abs(w.Sum()-1) > 1e-9 {
		return fmt.Errorf("%w: scoring weights sum to %.4f, want 1", ErrInvalidInput, w.Sum())
	}
	return nil
}

// Settings defaults.
const (
	DefaultMaxSources         = 8
	DefaultEnrichmentWorkers  = 8
	DefaultScrapeTimeout      = 10 * time.Second
	DefaultHTTPTimeout        = 30 * time.Second
	DefaultOutreachModel      = "gpt-4o-mini"
	DefaultOutreachMaxContent = 4000
)

// Settings holds application-wide tunables loaded from the settings file.
type Settings struct {
	Weights ScoringWeights

	// MaxSources caps the platforms returned by source selection.
	MaxSources int

	// EnrichmentWorkers bounds concurrent page scrapes.
	EnrichmentWorkers int

	// ScrapeTimeout bounds one page fetch.
	ScrapeTimeout time.Duration

	// HTTPTimeout bounds one adapter API call.
	HTTPTimeout time.Duration

	// OutreachModel names the chat model used by the outreach generator.
	OutreachModel string
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Weights:           DefaultScoringWeights(),
		MaxSources:        DefaultMaxSources,
		EnrichmentWorkers: DefaultEnrichmentWorkers,
		ScrapeTimeout:     DefaultScrapeTimeout,
		HTTPTimeout:       DefaultHTTPTimeout,
		OutreachModel:     DefaultOutreachModel,
	}
}

// Setting keys as stored in the settings file.
const (
	SettingICPWeight           = "scoring.icp_weight"
	SettingEngagementWeight    = "scoring.engagement_weight"
	SettingAccessibilityWeight = "scoring.accessibility_weight"
	SettingBuyingSignalWeight  = "scoring.buying_signal_weight"
	SettingMaxSources          = "selection.max_sources"
	SettingEnrichmentWorkers   = "enrichment.workers"
	SettingScrapeTimeout       = "enrichment.scrape_timeout_seconds"
	SettingHTTPTimeout         = "http.timeout_seconds"
	SettingOutreachModel       = "outreach.model"
)

// SettingKeys lists every recognised key in display order.
func SettingKeys() []string {
	return []string{
		SettingICPWeight,
		SettingEngagementWeight,
		SettingAccessibilityWeight,
		SettingBuyingSignalWeight,
		SettingMaxSources,
		SettingEnrichmentWorkers,
		SettingScrapeTimeout,
		SettingHTTPTimeout,
		SettingOutreachModel,
	}
}

// Value renders the effective value for a setting key.
func (s Settings) Value(key string) (string, bool) {
	switch key {
	case SettingICPWeight:
		return strconv.FormatFloat(s.Weights.ICP, 'f', -1, 64), true
	case SettingEngagementWeight:
		return strconv.FormatFloat(s.Weights.Engagement, 'f', -1, 64), true
	case SettingAccessibilityWeight:
		return strconv.FormatFloat(s.Weights.Accessibility, 'f', -1, 64), true
	case SettingBuyingSignalWeight:
		return strconv.FormatFloat(s.Weights.BuyingSignal, 'f', -1, 64), true
	case SettingMaxSources:
		return strconv.Itoa(s.MaxSources), true
	case SettingEnrichmentWorkers:
		return strconv.Itoa(s.EnrichmentWorkers), true
	case SettingScrapeTimeout:
		return strconv.Itoa(int(s.ScrapeTimeout / time.Second)), true
	case SettingHTTPTimeout:
		return strconv.Itoa(int(s.HTTPTimeout / time.Second)), true
	case SettingOutreachModel:
		return s.OutreachModel, true
	}
	return "", false
}
