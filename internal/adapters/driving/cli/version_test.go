package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Short(t *testing.T) {
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, nil, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "prospector version test-version-1.0.0")
}

func TestVersionCmd_DisplaysDevByDefault(t *testing.T) {
	originalVersion := version
	version = "dev"
	defer func() { version = originalVersion }()

	out, err := execute(t, nil, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "prospector version dev")
}

func TestVersionCmd_SkipsBootstrap(t *testing.T) {
	SetBootstrap(func(Options) (*Services, error) {
		return nil, errors.New("should not run")
	})
	defer SetBootstrap(nil)

	out, err := execute(t, nil, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "prospector version")
}

func TestSetVersion(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	SetVersion("")
	assert.Equal(t, "1.2.3", version)
}
