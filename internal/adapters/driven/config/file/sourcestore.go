package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
	"github.com/custodia-labs/prospector/internal/logger"
)

// Ensure SourceStore implements the interface.
var _ driven.SourceConfigStore = (*SourceStore)(nil)

// SourcesFileName is the sources document inside the config directory.
const SourcesFileName = "multi_source_config.json"

// SourceStore persists per-platform source configuration in a single JSON
// document shaped {"sources": {platform: {...}}}.
type SourceStore struct {
	mu       sync.RWMutex
	filePath string
	configs  map[domain.Platform]domain.SourceConfig
}

type sourcesDocument struct {
	Sources map[string]json.RawMessage `json:"sources"`
}

// NewSourceStore loads the sources document from configDir, defaulting to
// ~/.prospector. A missing or corrupt document is replaced with the default
// table and written back.
func NewSourceStore(configDir string) (*SourceStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &SourceStore{
		filePath: filepath.Join(configDir, SourcesFileName),
		configs:  make(map[domain.Platform]domain.SourceConfig),
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the document, regenerating defaults when needed. Only I/O
// errors are returned.
func (s *SourceStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		logger.Debug("No sources file at %s, writing defaults", s.filePath)
		return s.resetToDefaults()
	}

	configs, err := decodeSources(data)
	if err != nil {
		logger.Warn("%v; regenerating defaults", err)
		return s.resetToDefaults()
	}

	s.configs = configs
	return nil
}

func (s *SourceStore) resetToDefaults() error {
	s.configs = make(map[domain.Platform]domain.SourceConfig)
	for _, cfg := range domain.DefaultSourceConfigs() {
		s.configs[cfg.Platform] = cfg
	}
	return s.save()
}

// decodeSources validates and decodes a sources document. Unknown platforms
// are skipped and missing fields take the defaults.
func decodeSources(data []byte) (map[domain.Platform]domain.SourceConfig, error) {
	if err := validateSources(data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigCorrupt, err)
	}

	var doc sourcesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigCorrupt, err)
	}

	configs := make(map[domain.Platform]domain.SourceConfig, len(doc.Sources))
	for name, raw := range doc.Sources {
		p, err := domain.ParsePlatform(name)
		if err != nil {
			logger.Warn("Unknown platform in sources file: %s", name)
			continue
		}

		cfg := domain.NewSourceConfig(p)
		cfg.SearchParameters = nil
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("%w: source %s: %v", domain.ErrConfigCorrupt, name, err)
		}
		cfg.Platform = p
		if cfg.SearchParameters == nil {
			cfg.SearchParameters = map[string]any{}
		}
		configs[p] = cfg
	}
	return configs, nil
}

// save writes the whole document (caller must hold lock or own s).
func (s *SourceStore) save() error {
	doc := struct {
		Sources map[domain.Platform]domain.SourceConfig `json:"sources"`
	}{Sources: s.configs}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sources: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write sources: %w", err)
	}
	return nil
}

// Get returns the configuration for a platform.
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
	return s.collect(false)
}

// Enabled returns the enabled configurations in canonical platform order.
func (s *SourceStore) Enabled() []domain.SourceConfig {
	return s.collect(true)
}

func (s *SourceStore) collect(enabledOnly bool) []domain.SourceConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SourceConfig, 0, len(s.configs))
	for _, p := range domain.AllPlatforms() {
		cfg, ok := s.configs[p]
		if !ok || (enabledOnly && !cfg.Enabled) {
			continue
		}
		cfg.SearchParameters = domain.MergeParams(cfg.SearchParameters, nil)
		out = append(out, cfg)
	}
	return out
}

// Update replaces the configuration for cfg.Platform and saves.
func (s *SourceStore) Update(cfg domain.SourceConfig) error {
	if !cfg.Platform.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedPlatform, cfg.Platform)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg.SearchParameters = domain.MergeParams(cfg.SearchParameters, nil)
	s.configs[cfg.Platform] = cfg
	return s.save()
}

// Enable marks a platform enabled and saves.
func (s *SourceStore) Enable(platform domain.Platform) error {
	return s.setEnabled(platform, true)
}

// Disable marks a platform disabled and saves.
func (s *SourceStore) Disable(platform domain.Platform) error {
	return s.setEnabled(platform, false)
}

func (s *SourceStore) setEnabled(platform domain.Platform, enabled bool) error {
	if !platform.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedPlatform, platform)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.configs[platform]
	if !ok {
		cfg = domain.NewSourceConfig(platform)
	}
	cfg.Enabled = enabled
	s.configs[platform] = cfg
	return s.save()
}

// Path returns the backing file path.
func (s *SourceStore) Path() string {
	return s.filePath
}
