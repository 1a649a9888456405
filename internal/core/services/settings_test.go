package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prospector/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/prospector/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultSettings(), service.Get())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(domain.SettingMaxSources, 4)
	_ = store.Set(domain.SettingEnrichmentWorkers, 2)
	_ = store.Set(domain.SettingScrapeTimeout, 5)
	_ = store.Set(domain.SettingHTTPTimeout, 12)
	_ = store.Set(domain.SettingOutreachModel, "gpt-4o")

	settings := NewSettingsService(store).Get()

	assert.Equal(t, 4, settings.MaxSources)
	assert.Equal(t, 2, settings.EnrichmentWorkers)
	assert.Equal(t, 5*time.Second, settings.ScrapeTimeout)
	assert.Equal(t, 12*time.Second, settings.HTTPTimeout)
	assert.Equal(t, "gpt-4o", settings.OutreachModel)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(domain.SettingMaxSources, -3)
	_ = store.Set(domain.SettingHTTPTimeout, "soon")
	_ = store.Set(domain.SettingICPWeight, 7.5)

	settings := NewSettingsService(store).Get()
	defaults := domain.DefaultSettings()

	assert.Equal(t, defaults.MaxSources, settings.MaxSources)
	assert.Equal(t, defaults.HTTPTimeout, settings.HTTPTimeout)
	assert.InDelta(t, defaults.Weights.ICP, settings.Weights.ICP, 1e-9)
}

func TestSettingsService_Get_NormalizesWeights(t *testing.T) {
	t.Run("rescales to unit sum", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set(domain.SettingICPWeight, 0.5)
		_ = store.Set(domain.SettingEngagementWeight, 0.5)
		_ = store.Set(domain.SettingAccessibilityWeight, 0.5)
		_ = store.Set(domain.SettingBuyingSignalWeight, 0.5)

		w := NewSettingsService(store).Get().Weights

		assert.InDelta(t, 0.25, w.ICP, 1e-9)
		assert.InDelta(t, 0.25, w.BuyingSignal, 1e-9)
		assert.NoError(t, w.Validate())
	})

	t.Run("all zero falls back to defaults", func(t *testing.T) {
		store := memory.NewConfigStore()
		for _, k := range []string{domain.SettingICPWeight, domain.SettingEngagementWeight, domain.SettingAccessibilityWeight, domain.SettingBuyingSignalWeight} {
			_ = store.Set(k, 0.0)
		}

		w := NewSettingsService(store).Get().Weights

		assert.Equal(t, domain.DefaultScoringWeights(), w)
	})

	t.Run("integer weight is widened", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set(domain.SettingICPWeight, 1)
		_ = store.Set(domain.SettingEngagementWeight, 0)
		_ = store.Set(domain.SettingAccessibilityWeight, 0)
		_ = store.Set(domain.SettingBuyingSignalWeight, 0)

		w := NewSettingsService(store).Get().Weights

		assert.InDelta(t, 1.0, w.ICP, 1e-9)
	})
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{name: "weight", key: domain.SettingICPWeight, value: "0.3"},
		{name: "weight above one", key: domain.SettingICPWeight, value: "1.2", wantErr: true},
		{name: "weight not numeric", key: domain.SettingEngagementWeight, value: "high", wantErr: true},
		{name: "max sources", key: domain.SettingMaxSources, value: " 6 "},
		{name: "workers zero", key: domain.SettingEnrichmentWorkers, value: "0", wantErr: true},
		{name: "timeout", key: domain.SettingHTTPTimeout, value: "45"},
		{name: "timeout fractional", key: domain.SettingScrapeTimeout, value: "2.5", wantErr: true},
		{name: "model", key: domain.SettingOutreachModel, value: "gpt-4.1"},
		{name: "model empty", key: domain.SettingOutreachModel, value: "  ", wantErr: true},
		{name: "unknown key", key: "search.mode", value: "hybrid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			err := service.Set(tt.key, tt.value)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSettingsService_SetThenGet(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.Set(domain.SettingMaxSources, "3"))
	require.NoError(t, service.Set(domain.SettingScrapeTimeout, "20"))

	settings := service.Get()
	assert.Equal(t, 3, settings.MaxSources)
	assert.Equal(t, 20*time.Second, settings.ScrapeTimeout)
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	keys[0] = "mutated"

	assert.Len(t, service.Keys(), 9)
	assert.Equal(t, domain.SettingICPWeight, service.Keys()[0])
}
