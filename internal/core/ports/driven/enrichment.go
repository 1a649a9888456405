package driven

import (
	"context"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// PageScraper fetches a web page and returns its readable text.
// Implementations must bound each fetch with their own timeout.
type PageScraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// OutreachGenerator writes personalised outreach for a batch of enriched
// prospects in a single call.
type OutreachGenerator interface {
	Generate(ctx context.Context, batch []domain.EnrichedProspect) ([]domain.Outreach, error)
}
