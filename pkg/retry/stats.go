package retry

import (
	"sync"
	"time"
)

// Stats accumulates counters across executor runs. The zero value is ready
// to use, and a nil *Stats records nothing.
type Stats struct {
	mu   sync.Mutex
	data StatsSnapshot
}

// StatsSnapshot is a point-in-time copy of Stats
type StatsSnapshot struct {
	TotalAttempts   int64         // attempts started
	TotalRetries    int64         // sleeps scheduled
	TotalSuccesses  int64         // runs that succeeded
	TotalFailures   int64         // runs that gave up
	TotalRetryDelay time.Duration // sum of scheduled delays
	LastRetryTime   time.Time     // when the last retry was scheduled
}

// AverageAttempts returns attempts per finished run
func (s StatsSnapshot) AverageAttempts() float64 {
	runs := s.TotalSuccesses + s.TotalFailures
	if runs == 0 {
		return 0
	}
	return float64(s.TotalAttempts) / float64(runs)
}

// Snapshot returns the current counters
func (s *Stats) Snapshot() StatsSnapshot {
	if s == nil {
		return StatsSnapshot{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Reset zeroes the counters
func (s *Stats) Reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = StatsSnapshot{}
}

func (s *Stats) update(fn func(*StatsSnapshot)) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}
