package mcp

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil discovery service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Selector: &mockSelector{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingDiscoveryService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(requiredPorts())
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("empty ports", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingDiscoveryService)
	})

	t.Run("missing selector", func(t *testing.T) {
		ports := &Ports{Discovery: &mockDiscoveryService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSelector)
	})

	t.Run("source is optional", func(t *testing.T) {
		assert.NoError(t, requiredPorts().Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := requiredPorts()
		ports.Source = &mockSourceService{}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_Handler_ServesMetrics(t *testing.T) {
	server, err := NewServer(requiredPorts())
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "prospector_duplicates_merged_total")
}
