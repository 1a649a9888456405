package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the effective settings. Missing or out-of-range values fall
// back to defaults, and weights that do not sum to 1 are rescaled.
func (s *SettingsService) Get() domain.Settings {
	defaults := domain.DefaultSettings()

	return domain.Settings{
		Weights: normalizeWeights(domain.ScoringWeights{
			ICP:           s.getWeight(domain.SettingICPWeight, defaults.Weights.ICP),
			Engagement:    s.getWeight(domain.SettingEngagementWeight, defaults.Weights.Engagement),
			Accessibility: s.getWeight(domain.SettingAccessibilityWeight, defaults.Weights.Accessibility),
			BuyingSignal:  s.getWeight(domain.SettingBuyingSignalWeight, defaults.Weights.BuyingSignal),
		}),
		MaxSources:        s.getPositiveInt(domain.SettingMaxSources, defaults.MaxSources),
		EnrichmentWorkers: s.getPositiveInt(domain.SettingEnrichmentWorkers, defaults.EnrichmentWorkers),
		ScrapeTimeout:     s.getSeconds(domain.SettingScrapeTimeout, defaults.ScrapeTimeout),
		HTTPTimeout:       s.getSeconds(domain.SettingHTTPTimeout, defaults.HTTPTimeout),
		OutreachModel:     s.getString(domain.SettingOutreachModel, defaults.OutreachModel),
	}
}

// Set parses value according to key and persists it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case domain.SettingICPWeight, domain.SettingEngagementWeight, domain.SettingAccessibilityWeight, domain.SettingBuyingSignalWeight:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("%w: %s must be a number in [0,1]", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, f)

	case domain.SettingMaxSources, domain.SettingEnrichmentWorkers, domain.SettingScrapeTimeout, domain.SettingHTTPTimeout:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)

	case domain.SettingOutreachModel:
		if value == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, value)
	}

	return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	return domain.SettingKeys()
}

func (s *SettingsService) getWeight(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	v := s.configStore.GetFloat(key)
	if v < 0 || v > 1 {
		return defaultVal
	}
	return v
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if v := s.configStore.GetInt(key); v > 0 {
		return time.Duration(v) * time.Second
	}
	return defaultVal
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

// normalizeWeights rescales w to sum to 1. An all-zero set yields the defaults.
func normalizeWeights(w domain.ScoringWeights) domain.ScoringWeights {
	sum := w.Sum()
	if sum <= 0 {
		return domain.DefaultScoringWeights()
	}
	if w.Validate() == nil {
		return w
	}
	return domain.ScoringWeights{
		ICP:           w.ICP / sum,
		Engagement:    w.Engagement / sum,
		Accessibility: w.Accessibility / sum,
		BuyingSignal:  w.BuyingSignal / sum,
	}
}
