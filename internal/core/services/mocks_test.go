package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
)

// mapCreds implements driven.CredentialSource over a map.
type mapCreds map[string]string

func (m mapCreds) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok && v != ""
}

type searchCall struct {
	query   string
	filters map[string]any
}

// mockAdapter implements driven.PlatformAdapter with canned results per query.
type mockAdapter struct {
	platform domain.Platform
	authOK   bool
	results  map[string][]domain.RawResult

	mu    sync.Mutex
	cfg   domain.SourceConfig
	calls []searchCall
}

func newMockAdapter(p domain.Platform, authOK bool, results map[string][]domain.RawResult) *mockAdapter {
	return &mockAdapter{platform: p, authOK: authOK, results: results}
}

// factory registers the mock and remembers the config it was built with.
func (m *mockAdapter) factory(cfg domain.SourceConfig, _ driven.CredentialSource) (driven.PlatformAdapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	return m, nil
}

func (m *mockAdapter) Platform() domain.Platform { return m.platform }

func (m *mockAdapter) Authenticate(context.Context) bool { return m.authOK }

func (m *mockAdapter) Search(_ context.Context, query string, filters map[string]any) []domain.RawResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, searchCall{query: query, filters: filters})
	return m.results[query]
}

func (m *mockAdapter) ExtractProspects(raw []domain.RawResult) []domain.Prospect {
	out := make([]domain.Prospect, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.Prospect{
			Name:            r.Str("name"),
			Company:         r.Str("company"),
			SourcePlatform:  m.platform,
			SourceURL:       r.Str("url"),
			EngagementScore: r.Num("engagement"),
		})
	}
	return out
}

func (m *mockAdapter) RateLimits() domain.RateLimitInfo { return domain.RateLimitInfo{} }

func (m *mockAdapter) Metrics() domain.SourceMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.SourceMetrics{TotalQueries: len(m.calls), SuccessfulQueries: len(m.calls)}
}

func (m *mockAdapter) queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.query
	}
	return out
}

// stubSelector implements driving.SourceSelector with fixed output and
// records feedback.
type stubSelector struct {
	configs    []domain.SourceConfig
	strategies map[domain.Platform]domain.SearchStrategy

	mu       sync.Mutex
	feedback map[domain.Platform]float64
}

func (s *stubSelector) AnalyzeICP(domain.ICP) []domain.SourceConfig { return s.configs }

func (s *stubSelector) Strategies([]domain.Platform, domain.ICP) map[domain.Platform]domain.SearchStrategy {
	return s.strategies
}

func (s *stubSelector) AdjustPriority(p domain.Platform, performance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feedback == nil {
		s.feedback = make(map[domain.Platform]float64)
	}
	s.feedback[p] = performance
}

func (s *stubSelector) Multiplier(domain.Platform) float64 { return 1 }
