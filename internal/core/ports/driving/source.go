package driving

import (
	"context"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// SourceService manages per-platform source configurations.
// Platform names are parsed case-insensitively.
type SourceService interface {
	// List returns every configuration in canonical platform order.
	List(ctx context.Context) ([]domain.SourceConfig, error)

	// Get retrieves the configuration for a platform.
	Get(ctx context.Context, platform string) (*domain.SourceConfig, error)

	// Update validates and replaces a configuration.
	Update(ctx context.Context, cfg domain.SourceConfig) error

	// Enable turns a platform on.
	Enable(ctx context.Context, platform string) error

	// Disable turns a platform off.
	Disable(ctx context.Context, platform string) error
}
