package driving

import (
	"context"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// DiscoveryService runs one multi-source prospect discovery.
type DiscoveryService interface {
	// Discover selects platforms for icp, searches them concurrently, then
	// deduplicates and scores the union. It returns domain.ErrNoUsableSources
	// when no platform could be used at all.
	Discover(ctx context.Context, icp domain.ICP) (*domain.MultiSourceResult, error)
}

// EnrichmentService scrapes prospect pages and generates outreach in one batch.
type EnrichmentService interface {
	// Enrich scrapes each prospect's page with bounded concurrency, excludes
	// failures, then makes a single batch generation call.
	Enrich(ctx context.Context, prospects []domain.Prospect) (*domain.EnrichmentResult, error)
}
