package domain

import "time"

// RateLimitInfo is the throttling and quota state of one adapter.
// Adapters hand out snapshots; only the owning adapter mutates it.
type RateLimitInfo struct {
	RequestsPerMinute int `json:"requests_per_minute"`
	RequestsPerHour   int `json:"requests_per_hour"`

	// CurrentUsage counts outbound requests. Its reset policy is
	// platform-specific and not guaranteed.
	CurrentUsage int `json:"current_usage"`

	// ResetTime is set from platform response headers when available.
	ResetTime *time.Time `json:"reset_time,omitempty"`

	// DelaySeconds is the enforced minimum spacing between requests.
	DelaySeconds float64 `json:"delay_seconds"`
}

// SourceMetrics are rolling performance counters for one platform.
type SourceMetrics struct {
	TotalQueries          int       `json:"total_queries"`
	SuccessfulQueries     int       `json:"successful_queries"`
	TotalProspects        int       `json:"total_prospects"`
	AverageRelevanceScore float64   `json:"average_relevance_score"`
	ExecutionTime         float64   `json:"execution_time"`
	ErrorCount            int       `json:"error_count"`
	LastUpdated           time.Time `json:"last_updated"`
}

// Record folds one search invocation into the counters.
func (m *SourceMetrics) Record(prospectsFound int, elapsed time.Duration, success bool) {
	m.TotalQueries++
	if success {
		m.SuccessfulQueries++
	} else {
		m.ErrorCount++
	}
	if prospectsFound > 0 {
		m.TotalProspects += prospectsFound
	}
	m.ExecutionTime += elapsed.Seconds()
	m.LastUpdated = time.Now()
}

// RecordRelevance stores the average relevance observed after scoring.
func (m *SourceMetrics) RecordRelevance(avg float64) {
	m.AverageRelevanceScore = Clamp01(avg)
	m.LastUpdated = time.Now()
}

// SuccessRate returns SuccessfulQueries / TotalQueries, or 0 with no queries.
func (m *SourceMetrics) SuccessRate() float64 {
	if m.TotalQueries == 0 {
		return 0
	}
	return float64(m.SuccessfulQueries) / float64(m.TotalQueries)
}

// MultiSourceResult is the output envelope of one discovery run.
// It is not modified after the run returns it.
type MultiSourceResult struct {
	RunID string `json:"run_id"`

	// Prospects are deduplicated, scored and ranked by relevance.
	Prospects []Prospect `json:"prospects"`

	SourcePerformance map[Platform]SourceMetrics `json:"source_performance"`

	// TotalExecutionTime is the wall-clock duration of the run in seconds.
	TotalExecutionTime float64 `json:"total_execution_time"`

	SuccessfulSources []Platform `json:"successful_sources"`

	// FailedSources failed outright, e.g. on authentication.
	FailedSources []Platform `json:"failed_sources"`

	// SkippedSources were selected but are disabled or have no adapter.
	SkippedSources []Platform `json:"skipped_sources,omitempty"`
}
