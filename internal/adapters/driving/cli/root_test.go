package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "prospector", rootCmd.Use)
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config-dir", "env-file"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name))
		})
	}
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"discover", "select", "sources", "settings", "mcp", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestBootstrap_ReceivesOptions(t *testing.T) {
	var got Options
	source := &mockSourceService{configs: []domain.SourceConfig{domain.NewSourceConfig(domain.PlatformGitHub)}}
	SetBootstrap(func(opts Options) (*Services, error) {
		got = opts
		return &Services{Source: source}, nil
	})
	defer func() {
		SetBootstrap(nil)
		inject(&Services{})
		logger.SetVerbose(false)
	}()

	out, err := execute(t, nil, "--config-dir", "/tmp/prospector-test", "--env-file", "creds.env", "-v", "sources", "list")

	require.NoError(t, err)
	assert.Equal(t, Options{ConfigDir: "/tmp/prospector-test", EnvFile: "creds.env", Verbose: true}, got)
	assert.Contains(t, out, "github")
	assert.Same(t, source, sourceService)
	assert.True(t, logger.IsVerbose())
}

func TestBootstrap_Error(t *testing.T) {
	SetBootstrap(func(Options) (*Services, error) {
		return nil, errors.New("config dir unwritable")
	})
	defer SetBootstrap(nil)

	_, err := execute(t, nil, "sources", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config dir unwritable")
}

func TestBootstrap_SkippedWhenServicesInjected(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	called := false
	SetBootstrap(func(Options) (*Services, error) {
		called = true
		return nil, errors.New("should not run")
	})
	defer SetBootstrap(nil)

	_, err := execute(t, nil, "sources", "list")

	require.NoError(t, err)
	assert.False(t, called)
}
