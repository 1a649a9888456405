package driving

import "github.com/custodia-labs/prospector/internal/core/domain"

// SettingsService reads and updates application settings.
type SettingsService interface {
	// Get returns the effective settings, defaults filled in.
	Get() domain.Settings

	// Set validates and persists a single setting by key.
	Set(key, value string) error

	// Keys lists the recognised setting keys.
	Keys() []string
}
