package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/prospector/internal/connectors/github"
	"github.com/custodia-labs/prospector/internal/connectors/reddit"
	"github.com/custodia-labs/prospector/internal/connectors/twitter"
	"github.com/custodia-labs/prospector/internal/connectors/websearch"
	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
)

// AdapterRegistry maps platforms to the factories that build their adapters.
// Platforms without a factory are known but unimplemented.
type AdapterRegistry struct {
	mu        sync.RWMutex
	factories map[domain.Platform]driven.AdapterFactory
}

// NewAdapterRegistry creates a registry with the built-in adapters, whose
// HTTP clients use httpTimeout. Non-positive values use the default.
func NewAdapterRegistry(httpTimeout time.Duration) *AdapterRegistry {
	if httpTimeout <= 0 {
		httpTimeout = domain.DefaultHTTPTimeout
	}
	r := NewEmptyAdapterRegistry()
	r.registerBuiltinAdapters(httpTimeout)
	return r
}

// NewEmptyAdapterRegistry creates a registry with no adapters.
func NewEmptyAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{factories: make(map[domain.Platform]driven.AdapterFactory)}
}

type timeoutFactory func(domain.SourceConfig, driven.CredentialSource, time.Duration) (driven.PlatformAdapter, error)

func (r *AdapterRegistry) registerBuiltinAdapters(timeout time.Duration) {
	builtin := map[domain.Platform]timeoutFactory{
		domain.PlatformGitHub:       github.NewWithTimeout,
		domain.PlatformReddit:       reddit.NewWithTimeout,
		domain.PlatformTwitter:      twitter.NewWithTimeout,
		domain.PlatformGoogleSearch: websearch.NewWithTimeout,
	}
	for p, build := range builtin {
		r.Register(p, func(cfg domain.SourceConfig, creds driven.CredentialSource) (driven.PlatformAdapter, error) {
			return build(cfg, creds, timeout)
		})
	}
}

// Register installs or replaces the factory for a platform.
func (r *AdapterRegistry) Register(p domain.Platform, factory driven.AdapterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[p] = factory
}

// Has reports whether an adapter is implemented for p.
func (r *AdapterRegistry) Has(p domain.Platform) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[p]
	return ok
}

// Platforms lists the platforms with adapters, in canonical order.
func (r *AdapterRegistry) Platforms() []domain.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Platform, 0, len(r.factories))
	for _, p := range domain.AllPlatforms() {
		if _, ok := r.factories[p]; ok {
			out = append(out, p)
		}
	}
	// Registered platforms outside the known set sort after it.
	var extra []domain.Platform
	for p := range r.factories {
		if !p.Valid() {
			extra = append(extra, p)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// Build creates the adapter for cfg.Platform. It returns domain.ErrNoAdapter
// for platforms without an implementation.
func (r *AdapterRegistry) Build(cfg domain.SourceConfig, creds driven.CredentialSource) (driven.PlatformAdapter, error) {
	r.mu.RLock()
	factory, ok := r.factories[cfg.Platform]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoAdapter, cfg.Platform)
	}
	adapter, err := factory(cfg, creds)
	if err != nil {
		return nil, fmt.Errorf("build %s adapter: %w", cfg.Platform, err)
	}
	return adapter, nil
}
