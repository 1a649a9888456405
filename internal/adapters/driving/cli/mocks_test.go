package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

type mockDiscoveryService struct {
	result *domain.MultiSourceResult
	err    error
	icp    domain.ICP
}

func (m *mockDiscoveryService) Discover(_ context.Context, icp domain.ICP) (*domain.MultiSourceResult, error) {
	m.icp = icp
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.MultiSourceResult{RunID: "run-test"}, nil
	}
	// Commands may truncate the prospect slice; hand out a copy.
	r := *m.result
	r.Prospects = append([]domain.Prospect(nil), m.result.Prospects...)
	return &r, nil
}

type mockSelector struct {
	configs    []domain.SourceConfig
	strategies map[domain.Platform]domain.SearchStrategy
}

func (m *mockSelector) AnalyzeICP(_ domain.ICP) []domain.SourceConfig {
	return m.configs
}

func (m *mockSelector) Strategies(_ []domain.Platform, _ domain.ICP) map[domain.Platform]domain.SearchStrategy {
	return m.strategies
}

func (m *mockSelector) AdjustPriority(_ domain.Platform, _ float64) {}

func (m *mockSelector) Multiplier(_ domain.Platform) float64 { return 1 }

type mockEnrichmentService struct {
	result *domain.EnrichmentResult
	err    error
	got    []domain.Prospect
}

func (m *mockEnrichmentService) Enrich(_ context.Context, prospects []domain.Prospect) (*domain.EnrichmentResult, error) {
	m.got = prospects
	return m.result, m.err
}

type mockSourceService struct {
	configs  []domain.SourceConfig
	updated  *domain.SourceConfig
	enabled  []string
	disabled []string
	err      error
}

func (m *mockSourceService) List(_ context.Context) ([]domain.SourceConfig, error) {
	return m.configs, m.err
}

func (m *mockSourceService) Get(_ context.Context, platform string) (*domain.SourceConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, cfg := range m.configs {
		if string(cfg.Platform) == platform {
			c := cfg
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSourceService) Update(_ context.Context, cfg domain.SourceConfig) error {
	if m.err != nil {
		return m.err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.updated = &cfg
	return nil
}

func (m *mockSourceService) Enable(_ context.Context, platform string) error {
	m.enabled = append(m.enabled, platform)
	return m.err
}

func (m *mockSourceService) Disable(_ context.Context, platform string) error {
	m.disabled = append(m.disabled, platform)
	return m.err
}

type mockSettingsService struct {
	settings domain.Settings
	set      map[string]string
	err      error
}

func (m *mockSettingsService) Get() domain.Settings {
	return m.settings
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return domain.SettingKeys()
}

type testServices struct {
	discovery  *mockDiscoveryService
	selector   *mockSelector
	enrichment *mockEnrichmentService
	source     *mockSourceService
	settings   *mockSettingsService
}

// setupTestServices injects fresh mocks and returns them with a cleanup.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		discovery:  &mockDiscoveryService{},
		selector:   &mockSelector{},
		enrichment: &mockEnrichmentService{},
		source:     &mockSourceService{},
		settings:   &mockSettingsService{settings: domain.DefaultSettings(), set: map[string]string{}},
	}
	discoveryService = ts.discovery
	selectorService = ts.selector
	enrichmentService = ts.enrichment
	sourceService = ts.source
	settingsService = ts.settings

	return ts, func() {
		discoveryService = nil
		selectorService = nil
		enrichmentService = nil
		sourceService = nil
		settingsService = nil
	}
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so tests stay independent.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
