package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/core/ports/driving"
	"github.com/custodia-labs/prospector/internal/logger"
	"github.com/custodia-labs/prospector/internal/metrics"
)

// Ensure DiscoveryService implements the interface.
var _ driving.DiscoveryService = (*DiscoveryService)(nil)

// DiscoveryService coordinates one multi-source discovery run: selection,
// concurrent platform searches, deduplication, scoring and feedback.
type DiscoveryService struct {
	selector driving.SourceSelector
	registry *AdapterRegistry
	creds    driven.CredentialSource
	scorer   driving.LeadScorer
	dedup    driving.Deduplicator

	// store is optional; without it the selection engine's configs are used as-is.
	store driven.SourceConfigStore

	newRunID func() string
	now      func() time.Time
}

// DiscoveryOption configures a DiscoveryService.
type DiscoveryOption func(*DiscoveryService)

// WithSourceStore overlays stored per-platform configuration on selection.
func WithSourceStore(store driven.SourceConfigStore) DiscoveryOption {
	return func(s *DiscoveryService) { s.store = store }
}

// WithRunIDs replaces the UUID run-ID generator.
func WithRunIDs(fn func() string) DiscoveryOption {
	return func(s *DiscoveryService) { s.newRunID = fn }
}

// NewDiscoveryService creates a new discovery service.
func NewDiscoveryService(
	selector driving.SourceSelector,
	registry *AdapterRegistry,
	creds driven.CredentialSource,
	scorer driving.LeadScorer,
	dedup driving.Deduplicator,
	opts ...DiscoveryOption,
) *DiscoveryService {
	s := &DiscoveryService{
		selector: selector,
		registry: registry,
		creds:    creds,
		scorer:   scorer,
		dedup:    dedup,
		newRunID: uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// platformRun is the state of one platform within a run. It is written by
// its own goroutine and read only after the fan-out completes.
type platformRun struct {
	cfg      domain.SourceConfig
	strategy domain.SearchStrategy
	adapter  driven.PlatformAdapter

	authenticated bool
	prospects     []domain.Prospect
	elapsed       time.Duration
}

// Discover runs the full pipeline for icp.
func (s *DiscoveryService) Discover(ctx context.Context, icp domain.ICP) (*domain.MultiSourceResult, error) {
	start := s.now()
	result := &domain.MultiSourceResult{
		RunID:             s.newRunID(),
		Prospects:         []domain.Prospect{},
		SourcePerformance: make(map[domain.Platform]domain.SourceMetrics),
		SuccessfulSources: []domain.Platform{},
		FailedSources:     []domain.Platform{},
	}
	logger.Section("Discovery " + result.RunID)

	// 1. Select platforms and build their query plans
	selected := s.selector.AnalyzeICP(icp)
	platforms := make([]domain.Platform, len(selected))
	for i, cfg := range selected {
		platforms[i] = cfg.Platform
	}
	strategies := s.selector.Strategies(platforms, icp)
	logger.Info("Selected %d sources: %v", len(platforms), platforms)

	// 2. Resolve configuration and adapters
	runs := s.prepare(selected, strategies, result)

	// 3. Search every platform concurrently; adapters absorb their own errors
	var g errgroup.Group
	for _, run := range runs {
		g.Go(func() error {
			s.execute(ctx, run)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		metrics.Runs.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("discover: %w", err)
	}

	var union []domain.Prospect
	for _, run := range runs {
		p := run.cfg.Platform
		if !run.authenticated {
			result.FailedSources = append(result.FailedSources, p)
			metrics.AdapterRuns.WithLabelValues(p.String(), metrics.OutcomeAuthFailed).Inc()
			continue
		}
		result.SuccessfulSources = append(result.SuccessfulSources, p)
		result.SourcePerformance[p] = run.adapter.Metrics()
		union = append(union, run.prospects...)
		recordAdapterMetrics(run, result.SourcePerformance[p])
	}

	if len(result.SuccessfulSources) == 0 {
		metrics.Runs.WithLabelValues(metrics.OutcomeNoSources).Inc()
		return nil, noUsableSources(result)
	}

	// 4. Deduplicate, score and rank
	deduped := s.dedup.Deduplicate(union)
	metrics.DuplicatesMerged.Add(float64(len(union) - len(deduped)))
	scored := s.scorer.ScoreAll(deduped, icp)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	result.Prospects = scored

	// 5. Feed observed quality back into selection
	s.feedback(runs, scored, result)

	result.TotalExecutionTime = s.now().Sub(start).Seconds()
	metrics.Runs.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logger.Info("Discovery complete: %d prospects from %d sources (%d failed, %d skipped) in %.2fs",
		len(result.Prospects), len(result.SuccessfulSources), len(result.FailedSources),
		len(result.SkippedSources), result.TotalExecutionTime)
	return result, nil
}

func (s *DiscoveryService) prepare(
	selected []domain.SourceConfig,
	strategies map[domain.Platform]domain.SearchStrategy,
	result *domain.MultiSourceResult,
) []*platformRun {
	var runs []*platformRun
	for _, cfg := range selected {
		cfg = s.overlay(cfg)
		p := cfg.Platform

		if !cfg.Enabled {
			logger.Debug("%s: disabled, skipping", p)
			s.skip(result, p)
			continue
		}

		adapter, err := s.registry.Build(cfg, s.creds)
		if errors.Is(err, domain.ErrNoAdapter) {
			logger.Debug("%s: no adapter, skipping", p)
			s.skip(result, p)
			continue
		}
		if err != nil {
			logger.Warn("%s: %v", p, err)
			result.FailedSources = append(result.FailedSources, p)
			metrics.AdapterRuns.WithLabelValues(p.String(), metrics.OutcomeError).Inc()
			continue
		}

		runs = append(runs, &platformRun{cfg: cfg, strategy: strategies[p], adapter: adapter})
	}
	return runs
}

func (s *DiscoveryService) skip(result *domain.MultiSourceResult, p domain.Platform) {
	result.SkippedSources = append(result.SkippedSources, p)
	metrics.AdapterRuns.WithLabelValues(p.String(), metrics.OutcomeSkipped).Inc()
}

// overlay replaces the operational fields of cfg with the stored ones.
func (s *DiscoveryService) overlay(cfg domain.SourceConfig) domain.SourceConfig {
	if s.store == nil {
		return cfg
	}
	stored, ok := s.store.Get(cfg.Platform)
	if !ok {
		return cfg
	}
	cfg.Priority = stored.Priority
	cfg.MaxResults = stored.MaxResults
	cfg.RateLimitDelay = stored.RateLimitDelay
	cfg.SearchParameters = stored.SearchParameters
	cfg.Enabled = stored.Enabled
	return cfg
}

func (s *DiscoveryService) execute(ctx context.Context, run *platformRun) {
	start := time.Now()
	defer func() { run.elapsed = time.Since(start) }()

	p := run.cfg.Platform
	if !run.adapter.Authenticate(ctx) {
		logger.Warn("%s: authentication failed", p)
		return
	}
	run.authenticated = true

	limit := resultLimit(run.strategy.ResultLimit, run.cfg.MaxResults)
	filters := domain.MergeParams(run.cfg.SearchParameters, run.strategy.Filters)

	raw := collect(ctx, run.adapter, run.strategy.PrimaryQueries, filters, limit)
	if len(raw) == 0 && len(run.strategy.FallbackQueries) > 0 {
		logger.Debug("%s: primary queries empty, trying %d fallbacks", p, len(run.strategy.FallbackQueries))
		raw = collect(ctx, run.adapter, run.strategy.FallbackQueries, filters, limit)
	}

	for _, prospect := range run.adapter.ExtractProspects(raw) {
		if err := prospect.Validate(); err != nil {
			logger.Debug("%s: dropping prospect: %v", p, err)
			continue
		}
		prospect.SourcePlatform = p
		prospect.ClampScores()
		run.prospects = append(run.prospects, prospect)
	}
	logger.Info("%s: %d raw results, %d prospects", p, len(raw), len(run.prospects))
}

// collect runs queries in order until limit raw results are gathered.
func collect(
	ctx context.Context,
	adapter driven.PlatformAdapter,
	queries []string,
	filters map[string]any,
	limit int,
) []domain.RawResult {
	var raw []domain.RawResult
	for _, q := range queries {
		if ctx.Err() != nil || len(raw) >= limit {
			break
		}
		f := domain.MergeParams(filters, map[string]any{domain.FilterResultLimit: limit - len(raw)})
		raw = append(raw, adapter.Search(ctx, q, f)...)
	}
	if len(raw) > limit {
		raw = raw[:limit]
	}
	return raw
}

// resultLimit is the smaller positive of the strategy and config limits.
func resultLimit(strategyLimit, maxResults int) int {
	switch {
	case strategyLimit <= 0 && maxResults <= 0:
		return domain.DefaultResultLimit
	case strategyLimit <= 0:
		return maxResults
	case maxResults <= 0:
		return strategyLimit
	default:
		return min(strategyLimit, maxResults)
	}
}

// feedback scores each successful platform by the share of its prospects
// whose final relevance meets the strategy's quality threshold.
func (s *DiscoveryService) feedback(runs []*platformRun, scored []domain.Prospect, result *domain.MultiSourceResult) {
	byURL := make(map[string]float64, len(scored))
	byName := make(map[string]float64, len(scored))
	for _, p := range scored {
		if key := NormalizeURL(p.SourceURL); key != "" {
			byURL[key] = p.RelevanceScore
		}
		byName[nameKey(&p)] = p.RelevanceScore
	}

	for _, run := range runs {
		if !run.authenticated {
			continue
		}
		platform := run.cfg.Platform

		var sum float64
		var passed int
		for i := range run.prospects {
			relevance, ok := byURL[NormalizeURL(run.prospects[i].SourceURL)]
			if !ok {
				relevance = byName[nameKey(&run.prospects[i])]
			}
			sum += relevance
			if relevance >= run.strategy.QualityThreshold {
				passed++
			}
		}

		performance := 0.0
		if n := len(run.prospects); n > 0 {
			performance = float64(passed) / float64(n)
			m := result.SourcePerformance[platform]
			m.RecordRelevance(sum / float64(n))
			result.SourcePerformance[platform] = m
		}
		s.selector.AdjustPriority(platform, performance)
		logger.Debug("%s: performance %.2f (%d/%d above %.2f)",
			platform, performance, passed, len(run.prospects), run.strategy.QualityThreshold)
	}
}

func nameKey(p *domain.Prospect) string {
	return foldName(p.Name) + "|" + foldName(p.Company)
}

func recordAdapterMetrics(run *platformRun, m domain.SourceMetrics) {
	p := run.cfg.Platform.String()
	metrics.AdapterRuns.WithLabelValues(p, metrics.OutcomeSuccess).Inc()
	metrics.AdapterProspects.WithLabelValues(p).Add(float64(len(run.prospects)))
	metrics.AdapterErrors.WithLabelValues(p).Add(float64(m.ErrorCount))
	metrics.AdapterDuration.WithLabelValues(p).Observe(run.elapsed.Seconds())
}

func noUsableSources(result *domain.MultiSourceResult) error {
	var parts []string
	if len(result.FailedSources) > 0 {
		parts = append(parts, fmt.Sprintf("failed: %s", joinPlatforms(result.FailedSources)))
	}
	if len(result.SkippedSources) > 0 {
		parts = append(parts, fmt.Sprintf("skipped: %s", joinPlatforms(result.SkippedSources)))
	}
	if len(parts) == 0 {
		return domain.ErrNoUsableSources
	}
	return fmt.Errorf("%w (%s)", domain.ErrNoUsableSources, strings.Join(parts, "; "))
}

func joinPlatforms(platforms []domain.Platform) string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}
