package driven

import "github.com/custodia-labs/prospector/internal/core/domain"

// SourceConfigStore persists per-platform operational configuration.
// Every mutating call rewrites the whole document. Concurrent writers across
// processes are not supported.
type SourceConfigStore interface {
	// Get returns the configuration for a platform.
	Get(platform domain.Platform) (domain.SourceConfig, bool)

	// All returns every configuration in canonical platform order.
	All() []domain.SourceConfig

	// Enabled returns the enabled configurations in canonical platform order.
	Enabled() []domain.SourceConfig

	// Update replaces the configuration for cfg.Platform and saves.
	Update(cfg domain.SourceConfig) error

	// Enable marks a platform enabled and saves.
	Enable(platform domain.Platform) error

	// Disable marks a platform disabled and saves.
	Disable(platform domain.Platform) error

	// Path returns the backing file path.
	Path() string
}
