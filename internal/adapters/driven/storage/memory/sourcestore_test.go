package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

func TestNewSourceStore_Defaults(t *testing.T) {
	store := NewSourceStore()

	all := store.All()
	require.Len(t, all, len(domain.AllPlatforms()))
	assert.Equal(t, domain.PlatformTwitter, all[0].Platform)
	assert.Len(t, store.Enabled(), len(all)-4)
	assert.Equal(t, ":memory:", store.Path())
}

func TestSourceStore_Seeded(t *testing.T) {
	gh := domain.NewSourceConfig(domain.PlatformGitHub)
	tw := domain.NewSourceConfig(domain.PlatformTwitter)
	tw.Enabled = false
	store := NewSourceStore(gh, tw)

	assert.Equal(t, []domain.Platform{domain.PlatformTwitter, domain.PlatformGitHub}, platforms(store.All()))
	assert.Equal(t, []domain.Platform{domain.PlatformGitHub}, platforms(store.Enabled()))

	_, ok := store.Get(domain.PlatformReddit)
	assert.False(t, ok)
}

func TestSourceStore_Mutations(t *testing.T) {
	store := NewSourceStore(domain.NewSourceConfig(domain.PlatformGitHub))

	t.Run("update", func(t *testing.T) {
		cfg, ok := store.Get(domain.PlatformGitHub)
		require.True(t, ok)
		cfg.Priority = 9
		cfg.SearchParameters["sort"] = "followers"
		require.NoError(t, store.Update(cfg))

		got, _ := store.Get(domain.PlatformGitHub)
		assert.Equal(t, 9, got.Priority)
		assert.Equal(t, "followers", got.SearchParameters["sort"])
	})

	t.Run("returned maps are copies", func(t *testing.T) {
		got, _ := store.Get(domain.PlatformGitHub)
		got.SearchParameters["sort"] = "changed"

		again, _ := store.Get(domain.PlatformGitHub)
		assert.Equal(t, "followers", again.SearchParameters["sort"])
	})

	t.Run("disable and enable", func(t *testing.T) {
		require.NoError(t, store.Disable(domain.PlatformGitHub))
		got, _ := store.Get(domain.PlatformGitHub)
		assert.False(t, got.Enabled)

		require.NoError(t, store.Enable(domain.PlatformGitHub))
		got, _ = store.Get(domain.PlatformGitHub)
		assert.True(t, got.Enabled)
	})

	t.Run("enable unknown entry creates defaults", func(t *testing.T) {
		require.NoError(t, store.Disable(domain.PlatformMedium))
		got, ok := store.Get(domain.PlatformMedium)
		require.True(t, ok)
		assert.False(t, got.Enabled)
		assert.Equal(t, domain.DefaultPriority, got.Priority)
	})
}

func platforms(configs []domain.SourceConfig) []domain.Platform {
	out := make([]domain.Platform, len(configs))
	for i, c := range configs {
		out[i] = c.Platform
	}
	return out
}
