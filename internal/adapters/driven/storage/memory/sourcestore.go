package memory

import (
	"sync"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
)

// Ensure SourceStore implements the interface.
var _ driven.SourceConfigStore = (*SourceStore)(nil)

// SourceStore is an in-memory implementation of driven.SourceConfigStore.
type SourceStore struct {
	mu      sync.RWMutex
	configs map[domain.Platform]domain.SourceConfig
}

// NewSourceStore creates a store holding configs. With no arguments it is
// seeded with the default configuration for every platform.
func NewSourceStore(configs ...domain.SourceConfig) *SourceStore {
	if len(configs) == 0 {
		configs = domain.DefaultSourceConfigs()
	}
	s := &SourceStore{configs: make(map[domain.Platform]domain.SourceConfig, len(configs))}
	for _, cfg := range configs {
		s.configs[cfg.Platform] = cfg
	}
	return s
}

// Get retrieves the configuration for a platform.
func (s *SourceStore) Get(platform domain.Platform) (domain.SourceConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[platform]
	if ok {
		cfg.SearchParameters = domain.MergeParams(cfg.SearchParameters, nil)
	}
	return cfg, ok
}

// All returns every configuration in canonical platform order.
func (s *SourceStore) All() []domain.SourceConfig {
	return s.filter(func(domain.SourceConfig) bool { return true })
}

// Enabled returns the enabled configurations in canonical platform order.
func (s *SourceStore) Enabled() []domain.SourceConfig {
	return s.filter(func(c domain.SourceConfig) bool { return c.Enabled })
}

func (s *SourceStore) filter(keep func(domain.SourceConfig) bool) []domain.SourceConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.SourceConfig
	for _, p := range domain.AllPlatforms() {
		if cfg, ok := s.configs[p]; ok && keep(cfg) {
			cfg.SearchParameters = domain.MergeParams(cfg.SearchParameters, nil)
			out = append(out, cfg)
		}
	}
	return out
}

// Update replaces the configuration for cfg.Platform.
func (s *SourceStore) Update(cfg domain.SourceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg.SearchParameters = domain.MergeParams(cfg.SearchParameters, nil)
	s.configs[cfg.Platform] = cfg
	return nil
}

// Enable marks a platform enabled.
func (s *SourceStore) Enable(platform domain.Platform) error {
	return s.setEnabled(platform, true)
}

// Disable marks a platform disabled.
func (s *SourceStore) Disable(platform domain.Platform) error {
	return s.setEnabled(platform, false)
}

func (s *SourceStore) setEnabled(platform domain.Platform, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[platform]
	if !ok {
		cfg = domain.NewSourceConfig(platform)
	}
	cfg.Enabled = enabled
	s.configs[platform] = cfg
	return nil
}

// Path returns a marker path.
func (s *SourceStore) Path() string {
	return ":memory:"
}
