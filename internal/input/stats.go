package input

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats counts what the dispatcher did with input.
type Stats struct {
	// Event counters
	keyEvents        atomic.Uint64
	consumed         atomic.Uint64
	passed           atomic.Uint64
	suppressed       atomic.Uint64
	controllerEvents atomic.Uint64
	scrollEvents     atomic.Uint64
	captures         atomic.Uint64
	rejectedCaptures atomic.Uint64
	setups           atomic.Uint64

	// Peak key handling latency (all time)
	peakKeyLatency atomic.Int64

	// Start time for uptime calculation
	mu        sync.RWMutex
	startTime time.Time
}

// NewStats creates zeroed counters.
func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

// StatsSnapshot holds a point-in-time view of the counters.
type StatsSnapshot struct {
	KeyEvents        uint64
	Consumed         uint64
	Passed           uint64
	Suppressed       uint64
	ControllerEvents uint64
	ScrollEvents     uint64
	Captures         uint64
	RejectedCaptures uint64
	Setups           uint64

	PeakKeyLatency time.Duration
	Uptime         time.Duration
}

// Snapshot returns a point-in-time view of all counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.RLock()
	start := s.startTime
	s.mu.RUnlock()

	return StatsSnapshot{
		KeyEvents:        s.keyEvents.Load(),
		Consumed:         s.consumed.Load(),
		Passed:           s.passed.Load(),
		Suppressed:       s.suppressed.Load(),
		ControllerEvents: s.controllerEvents.Load(),
		ScrollEvents:     s.scrollEvents.Load(),
		Captures:         s.captures.Load(),
		RejectedCaptures: s.rejectedCaptures.Load(),
		Setups:           s.setups.Load(),
		PeakKeyLatency:   time.Duration(s.peakKeyLatency.Load()),
		Uptime:           time.Since(start),
	}
}

// recordKey counts a keyboard event and its outcome.
func (s *Stats) recordKey(consumed bool, latency time.Duration) {
	s.keyEvents.Add(1)
	if consumed {
		s.consumed.Add(1)
	} else {
		s.passed.Add(1)
	}

	// Update peak latency
	ns := latency.Nanoseconds()
	for {
		current := s.peakKeyLatency.Load()
		if ns <= current {
			break
		}
		if s.peakKeyLatency.CompareAndSwap(current, ns) {
			break
		}
	}
}

func (s *Stats) recordCapture(accepted bool) {
	if accepted {
		s.captures.Add(1)
		return
	}
	s.rejectedCaptures.Add(1)
}
