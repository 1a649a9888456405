package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterRuns_Increment(t *testing.T) {
	before := testutil.ToFloat64(AdapterRuns.WithLabelValues("github", OutcomeSuccess))

	AdapterRuns.WithLabelValues("github", OutcomeSuccess).Inc()

	after := testutil.ToFloat64(AdapterRuns.WithLabelValues("github", OutcomeSuccess))
	assert.Equal(t, before+1, after)
}

func TestHandler_ServesCollectors(t *testing.T) {
	DuplicatesMerged.Add(2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prospector_duplicates_merged_total")
}
