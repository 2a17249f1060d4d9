package tracker

import (
	"sync/atomic"
)

// Tracker tracks generation statistics for the lifetime of the process.
// Fields are accessed atomically.
type Tracker struct {
	started        int64
	completed      int64
	failed         int64
	cancelled      int64
	fallbacks      int64
	forcedStarts   int64
	framesRendered int64
}

// Stats is a point-in-time copy of the counters.
type Stats struct {
	Started        int64
	Completed      int64
	Failed         int64
	Cancelled      int64
	Fallbacks      int64
	ForcedStarts   int64
	FramesRendered int64
}

// New creates a new Tracker.
func New() *Tracker {
	return &Tracker{}
}

// TrackStarted increments the started session counter.
func (t *Tracker) TrackStarted() {
	atomic.AddInt64(&t.started, 1)
}

func (t *Tracker) TrackCompleted() {
	atomic.AddInt64(&t.completed, 1)
}

func (t *Tracker) TrackFailed() {
	atomic.AddInt64(&t.failed, 1)
}

func (t *Tracker) TrackCancelled() {
	atomic.AddInt64(&t.cancelled, 1)
}

func (t *Tracker) TrackFallback() {
	atomic.AddInt64(&t.fallbacks, 1)
}

func (t *Tracker) TrackForcedStart() {
	atomic.AddInt64(&t.forcedStarts, 1)
}

// TrackFramesRendered adds the frame count of a finished session.
func (t *Tracker) TrackFramesRendered(n int64) {
	atomic.AddInt64(&t.framesRendered, n)
}

// Snapshot returns a copy of the current stats.
func (t *Tracker) Snapshot() Stats {
	return Stats{
		Started:        atomic.LoadInt64(&t.started),
		Completed:      atomic.LoadInt64(&t.completed),
		Failed:         atomic.LoadInt64(&t.failed),
		Cancelled:      atomic.LoadInt64(&t.cancelled),
		Fallbacks:      atomic.LoadInt64(&t.fallbacks),
		ForcedStarts:   atomic.LoadInt64(&t.forcedStarts),
		FramesRendered: atomic.LoadInt64(&t.framesRendered),
	}
}
