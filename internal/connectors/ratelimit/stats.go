package ratelimit

import (
	"sync"
	"time"

	"github.com/custodia-labs/prospector/internal/core/domain"
)

// Stats accumulates one adapter's SourceMetrics across search invocations.
type Stats struct {
	mu      sync.Mutex
	metrics domain.SourceMetrics
}

// Record folds one search invocation into the counters. Absorbed call
// failures are added to ErrorCount on top of the per-invocation outcome.
func (s *Stats) Record(found int, elapsed time.Duration, success bool, callErrors int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Record(found, elapsed, success)
	if callErrors > 0 {
		s.metrics.ErrorCount += callErrors
		if !success {
			// Record already counted one error for the failed invocation.
			s.metrics.ErrorCount--
		}
	}
}

// Snapshot returns a copy of the counters.
func (s *Stats) Snapshot() domain.SourceMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}
