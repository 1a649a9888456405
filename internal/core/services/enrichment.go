package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/core/ports/driving"
	"github.com/custodia-labs/prospector/internal/logger"
	"github.com/custodia-labs/prospector/internal/metrics"
)

// Ensure EnrichmentService implements the interface.
var _ driving.EnrichmentService = (*EnrichmentService)(nil)

// EnrichmentService scrapes prospect web pages with a bounded worker pool
// and hands the successful set to the outreach generator in one call.
type EnrichmentService struct {
	scraper   driven.PageScraper
	generator driven.OutreachGenerator

	workers int
	timeout time.Duration
}

// NewEnrichmentService creates an enrichment service. The generator may be
// nil, in which case only scraping is performed.
func NewEnrichmentService(
	scraper driven.PageScraper,
	generator driven.OutreachGenerator,
	workers int,
	timeout time.Duration,
) *EnrichmentService {
	if workers <= 0 {
		workers = domain.DefaultEnrichmentWorkers
	}
	if timeout <= 0 {
		timeout = domain.DefaultScrapeTimeout
	}
	return &EnrichmentService{
		scraper:   scraper,
		generator: generator,
		workers:   workers,
		timeout:   timeout,
	}
}

// Enrich scrapes each prospect's best URL, excludes failures and generates
// outreach for the rest.
func (s *EnrichmentService) Enrich(ctx context.Context, prospects []domain.Prospect) (*domain.EnrichmentResult, error) {
	if s.scraper == nil {
		return nil, domain.ErrScraperUnavailable
	}
	logger.Section("Enrichment")

	// Slots keep input order regardless of completion order; nil means excluded.
	pages := make([]*domain.EnrichedProspect, len(prospects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range prospects {
		g.Go(func() error {
			page, err := s.scrape(gctx, prospects[i])
			if err != nil {
				logger.Warn("enrich %s: %v", prospects[i].Name, err)
				metrics.Scrapes.WithLabelValues(metrics.OutcomeError).Inc()
				return nil
			}
			metrics.Scrapes.WithLabelValues(metrics.OutcomeSuccess).Inc()
			pages[i] = page
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("enrich: %w", err)
	}

	result := &domain.EnrichmentResult{Enriched: []domain.EnrichedProspect{}}
	for i, page := range pages {
		if page == nil {
			result.Excluded = append(result.Excluded, excludedKey(&prospects[i]))
			continue
		}
		result.Enriched = append(result.Enriched, *page)
	}
	logger.Info("Scraped %d of %d prospects", len(result.Enriched), len(prospects))

	if len(result.Enriched) == 0 || s.generator == nil {
		return result, nil
	}

	outreach, err := s.generator.Generate(ctx, result.Enriched)
	if err != nil {
		return result, fmt.Errorf("generate outreach: %w", err)
	}
	result.Outreach = outreach
	return result, nil
}

func (s *EnrichmentService) scrape(ctx context.Context, p domain.Prospect) (*domain.EnrichedProspect, error) {
	url := CandidateURL(&p)
	if url == "" {
		return nil, fmt.Errorf("%w: no URL to scrape", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", url, err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("scrape %s: empty page", url)
	}
	return &domain.EnrichedProspect{Prospect: p, URL: url, PageContent: content}, nil
}

// CandidateURL picks the page to scrape: website, source URL, then LinkedIn
// or GitHub.
func CandidateURL(p *domain.Prospect) string {
	for _, u := range []string{p.Website, p.SourceURL, p.LinkedInURL, p.GitHubURL} {
		if u = strings.TrimSpace(u); u != "" {
			return u
		}
	}
	return ""
}

func excludedKey(p *domain.Prospect) string {
	if p.SourceURL != "" {
		return p.SourceURL
	}
	return p.Name
}
