package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
)

func TestNewAdapterRegistry(t *testing.T) {
	r := NewAdapterRegistry(0)

	assert.Equal(t, []domain.Platform{
		domain.PlatformTwitter,
		domain.PlatformReddit,
		domain.PlatformGitHub,
		domain.PlatformGoogleSearch,
	}, r.Platforms())
	assert.True(t, r.Has(domain.PlatformGitHub))
	assert.False(t, r.Has(domain.PlatformMedium))
}

func TestAdapterRegistry_Build(t *testing.T) {
	t.Run("builtin without credentials", func(t *testing.T) {
		r := NewAdapterRegistry(0)
		for _, p := range r.Platforms() {
			adapter, err := r.Build(domain.NewSourceConfig(p), mapCreds{})
			require.NoError(t, err, p)
			assert.Equal(t, p, adapter.Platform())
		}
	})

	t.Run("no adapter", func(t *testing.T) {
		_, err := NewAdapterRegistry(0).Build(domain.NewSourceConfig(domain.PlatformMeetup), mapCreds{})
		assert.ErrorIs(t, err, domain.ErrNoAdapter)
	})

	t.Run("factory error is wrapped", func(t *testing.T) {
		r := NewEmptyAdapterRegistry()
		boom := errors.New("boom")
		r.Register(domain.PlatformMedium, func(domain.SourceConfig, driven.CredentialSource) (driven.PlatformAdapter, error) {
			return nil, boom
		})

		_, err := r.Build(domain.NewSourceConfig(domain.PlatformMedium), mapCreds{})
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "build medium adapter")
	})

	t.Run("register replaces", func(t *testing.T) {
		r := NewAdapterRegistry(0)
		mock := newMockAdapter(domain.PlatformGitHub, true, nil)
		r.Register(domain.PlatformGitHub, mock.factory)

		adapter, err := r.Build(domain.NewSourceConfig(domain.PlatformGitHub), mapCreds{})
		require.NoError(t, err)
		assert.Same(t, mock, adapter)
	})
}
