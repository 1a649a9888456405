package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultScoringWeights(t *testing.T) {
	w := DefaultScoringWeights()

	assert.InDelta(t, 1.0, w.Sum(), 1e-12)
	assert.NoError(t, w.Validate())
	assert.Equal(t, 0.40, w.ICP)
	assert.Equal(t, 0.15, w.BuyingSignal)
}

func TestScoringWeights_Validate(t *testing.T) {
	t.Run("sum not one", func(t *testing.T) {
		w := ScoringWeights{ICP: 0.5, Engagement: 0.5, Accessibility: 0.5}
		assert.ErrorIs(t, w.Validate(), ErrInvalidInput)
	})

	t.Run("negative", func(t *testing.T) {
		w := ScoringWeights{ICP: 1.2, Engagement: -0.2}
		assert.ErrorIs(t, w.Validate(), ErrInvalidInput)
	})
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, 8, s.MaxSources)
	assert.Equal(t, 8, s.EnrichmentWorkers)
	assert.Equal(t, 10*time.Second, s.ScrapeTimeout)
	assert.Equal(t, 30*time.Second, s.HTTPTimeout)
	assert.Equal(t, "gpt-4o-mini", s.OutreachModel)
}

func TestSettingKeys(t *testing.T) {
	keys := SettingKeys()

	assert.Len(t, keys, 9)
	assert.Equal(t, SettingICPWeight, keys[0])
	assert.Equal(t, SettingOutreachModel, keys[len(keys)-1])
}

func TestSettings_Value(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		key  string
		want string
	}{
		{key: SettingICPWeight, want: "0.4"},
		{key: SettingBuyingSignalWeight, want: "0.15"},
		{key: SettingMaxSources, want: "8"},
		{key: SettingScrapeTimeout, want: "10"},
		{key: SettingHTTPTimeout, want: "30"},
		{key: SettingOutreachModel, want: DefaultOutreachModel},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := s.Value(tt.key)

			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("every key renders", func(t *testing.T) {
		for _, key := range SettingKeys() {
			_, ok := s.Value(key)
			assert.True(t, ok, key)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		_, ok := s.Value("search.mode")
		assert.False(t, ok)
	})
}
