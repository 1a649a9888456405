package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages per-platform source configurations.
type SourceService struct {
	store driven.SourceConfigStore
}

// NewSourceService creates a new source service.
func NewSourceService(store driven.SourceConfigStore) *SourceService {
	return &SourceService{store: store}
}

// List returns all source configurations in canonical platform order.
func (s *SourceService) List(ctx context.Context) ([]domain.SourceConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.All(), nil
}

// Get retrieves the configuration for a platform name.
func (s *SourceService) Get(ctx context.Context, platform string) (*domain.SourceConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := domain.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	cfg, ok := s.store.Get(p)
	if !ok {
		return nil, fmt.Errorf("%w: source %s", domain.ErrNotFound, p)
	}
	return &cfg, nil
}

// Update validates and replaces a configuration.
func (s *SourceService) Update(ctx context.Context, cfg domain.SourceConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.SearchParameters == nil {
		cfg.SearchParameters = map[string]any{}
	}
	return s.store.Update(cfg)
}

// Enable turns a platform on.
func (s *SourceService) Enable(ctx context.Context, platform string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := domain.ParsePlatform(platform)
	if err != nil {
		return err
	}
	return s.store.Enable(p)
}

// Disable turns a platform off.
func (s *SourceService) Disable(ctx context.Context, platform string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := domain.ParsePlatform(platform)
	if err != nil {
		return err
	}
	return s.store.Disable(p)
}
