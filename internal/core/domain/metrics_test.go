package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSourceMetrics_Record(t *testing.T) {
	var m SourceMetrics

	m.Record(5, 2*time.Second, true)
	m.Record(0, 500*time.Millisecond, false)

	assert.Equal(t, 2, m.TotalQueries)
	assert.Equal(t, 1, m.SuccessfulQueries)
	assert.Equal(t, 1, m.ErrorCount)
	assert.Equal(t, 5, m.TotalProspects)
	assert.InDelta(t, 2.5, m.ExecutionTime, 1e-9)
	assert.False(t, m.LastUpdated.IsZero())
	assert.InDelta(t, 0.5, m.SuccessRate(), 1e-9)
}

func TestSourceMetrics_RecordIgnoresNegativeCounts(t *testing.T) {
	var m SourceMetrics
	m.Record(-3, 0, true)

	assert.Equal(t, 0, m.TotalProspects)
}

func TestSourceMetrics_RecordRelevance(t *testing.T) {
	var m SourceMetrics
	m.RecordRelevance(1.4)

	assert.Equal(t, 1.0, m.AverageRelevanceScore)
}

func TestSourceMetrics_SuccessRateEmpty(t *testing.T) {
	var m SourceMetrics
	assert.Equal(t, 0.0, m.SuccessRate())
}
