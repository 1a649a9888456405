package mcp

import (
	"context"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// mockDiscoveryService is a mock implementation of driving.DiscoveryService.
type mockDiscoveryService struct {
	result *domain.MultiSourceResult
	err    error
	icp    domain.ICP
}

func (m *mockDiscoveryService) Discover(_ context.Context, icp domain.ICP) (*domain.MultiSourceResult, error) {
	m.icp = icp
	return m.result, m.err
}

// mockSelector is a mock implementation of driving.SourceSelector.
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

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []domain.SourceConfig
	source  *domain.SourceConfig
	err     error
}

func (m *mockSourceService) List(_ context.Context) ([]domain.SourceConfig, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Get(_ context.Context, _ string) (*domain.SourceConfig, error) {
	return m.source, m.err
}

func (m *mockSourceService) Update(_ context.Context, _ domain.SourceConfig) error {
	return m.err
}

func (m *mockSourceService) Enable(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSourceService) Disable(_ context.Context, _ string) error {
	return m.err
}

func requiredPorts() *Ports {
	return &Ports{Discovery: &mockDiscoveryService{}, Selector: &mockSelector{}}
}
