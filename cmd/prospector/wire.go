package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/prospector/internal/adapters/driven/config/file"
	"github.com/custodia-labs/prospector/internal/adapters/driven/env"
	"github.com/custodia-labs/prospector/internal/adapters/driven/outreach/openai"
	"github.com/custodia-labs/prospector/internal/adapters/driven/scraper"
	"github.com/custodia-labs/prospector/internal/adapters/driving/cli"
	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/core/services"
	"github.com/custodia-labs/prospector/internal/logger"
)

// Credential keys read by the outreach generator.
const (
	envOpenAIKey     = "OPENAI_API_KEY"
	envOpenAIBaseURL = "OPENAI_BASE_URL"
)

// build wires stores, adapters and services for one CLI invocation.
func build(opts cli.Options) (*cli.Services, error) {
	dir := opts.ConfigDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = d
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Get()

	sourceStore, err := file.NewSourceStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open sources: %w", err)
	}

	creds, err := env.NewSource(opts.EnvFile, ".env", filepath.Join(dir, ".env"))
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if f := creds.File(); f != "" {
		logger.Debug("Credentials file: %s", f)
	}

	selector := services.NewSourceSelectionEngine(services.WithMaxSources(settings.MaxSources))
	discovery := services.NewDiscoveryService(
		selector,
		services.NewAdapterRegistry(settings.HTTPTimeout),
		creds,
		services.NewLeadScoringEngine(settings.Weights),
		services.NewDeduplicationEngine(),
		services.WithSourceStore(sourceStore),
	)

	generator, err := newGenerator(creds, settings, filepath.Join(dir, "prompts"))
	if err != nil {
		return nil, err
	}
	enrichment := services.NewEnrichmentService(
		scraper.New(scraper.Config{Timeout: settings.ScrapeTimeout}),
		generator,
		settings.EnrichmentWorkers,
		settings.ScrapeTimeout,
	)

	return &cli.Services{
		Discovery:  discovery,
		Selector:   selector,
		Enrichment: enrichment,
		Source:     services.NewSourceService(sourceStore),
		Settings:   settingsService,
	}, nil
}

// newGenerator returns nil without an error when no API key is configured;
// enrichment then stops after scraping.
func newGenerator(creds driven.CredentialSource, settings domain.Settings, promptDir string) (driven.OutreachGenerator, error) {
	key, _ := creds.Lookup(envOpenAIKey)
	baseURL, _ := creds.Lookup(envOpenAIBaseURL)

	gen, err := openai.NewGenerator(openai.Config{
		APIKey:  key,
		BaseURL: baseURL,
		Model:   settings.OutreachModel,
	})
	if errors.Is(err, domain.ErrGeneratorUnavailable) {
		logger.Debug("%s not set, outreach generation disabled", envOpenAIKey)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create outreach generator: %w", err)
	}

	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		return nil, fmt.Errorf("open prompts: %w", err)
	}
	gen.SetPromptStore(prompts)
	return gen, nil
}
