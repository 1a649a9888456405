// Package metrics holds the Prometheus collectors for discovery runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess    = "success"
	OutcomeAuthFailed = "auth_failed"
	OutcomeSkipped    = "skipped"
	OutcomeError      = "error"
	OutcomeNoSources  = "no_usable_sources"
)

var (
	AdapterRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prospector",
			Name:      "adapter_runs_total",
			Help:      "Platform adapter runs by outcome",
		},
		[]string{"platform", "outcome"},
	)

	AdapterProspects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prospector",
			Name:      "adapter_prospects_total",
			Help:      "Prospects extracted per platform",
		},
		[]string{"platform"},
	)

	AdapterErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prospector",
			Name:      "adapter_errors_total",
			Help:      "Absorbed adapter call failures per platform",
		},
		[]string{"platform"},
	)

	AdapterDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prospector",
			Name:      "adapter_duration_seconds",
			Help:      "Wall-clock duration of one platform's search phase",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"platform"},
	)

	Runs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prospector",
			Name:      "discovery_runs_total",
			Help:      "Discovery runs by outcome",
		},
		[]string{"outcome"},
	)

	DuplicatesMerged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "prospector",
			Name:      "duplicates_merged_total",
			Help:      "Prospect records removed by deduplication",
		},
	)

	Scrapes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prospector",
			Name:      "enrichment_scrapes_total",
			Help:      "Enrichment page scrapes by outcome",
		},
		[]string{"outcome"},
	)
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
