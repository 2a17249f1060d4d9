package animator

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CrusoO/CodeSensei/pkg/logging"
	"github.com/CrusoO/CodeSensei/pkg/surface"
	"github.com/CrusoO/CodeSensei/pkg/timeline"

	"github.com/fogleman/gg"
)

// Outcome reports how a driver run ended.
type Outcome int

// Driver outcomes.
const (
	OutcomeCompleted Outcome = iota
	OutcomeCancelled
)

func (o Outcome) String() string {
	if o == OutcomeCancelled {
		return "cancelled"
	}
	return "completed"
}

// DefaultTickInterval is used when no interval is configured (about 60 fps).
const DefaultTickInterval = 16 * time.Millisecond

// Driver advances a timeline against the wall clock and renders the active
// scene onto the surface on every tick. Pacing follows elapsed real time, not
// tick counts, so a stalled tick skips frames instead of stretching the run.
type Driver struct {
	tl         *timeline.Timeline
	surf       *surface.Surface
	interval   time.Duration
	onProgress func(fraction float64)

	done     chan Outcome
	stop     chan struct{}
	stopOnce sync.Once
	renders  atomic.Int64
}

// New creates a driver. onProgress may be nil; when set it receives the
// overall timeline fraction in [0, 1] and is never called with a value lower
// than one it already saw.
func New(tl *timeline.Timeline, surf *surface.Surface, interval time.Duration, onProgress func(float64)) *Driver {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Driver{
		tl:         tl,
		surf:       surf,
		interval:   interval,
		onProgress: onProgress,
		done:       make(chan Outcome, 1),
		stop:       make(chan struct{}),
	}
}

// Start begins the run loop. It returns immediately; the outcome is
// delivered on Done.
func (d *Driver) Start(ctx context.Context) {
	go d.run(ctx)
}

// Done returns the channel on which the run outcome is delivered exactly once.
func (d *Driver) Done() <-chan Outcome {
	return d.done
}

// Stop requests cancellation. Safe to call multiple times and from any
// goroutine; the run settles within one tick interval.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
}

// RenderCount returns the number of frames rendered so far.
func (d *Driver) RenderCount() int64 {
	return d.renders.Load()
}

func (d *Driver) run(ctx context.Context) {
	start := time.Now()
	total := d.tl.Total()
	lastReported := -1.0

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	slog.Debug("animation started", "scenes", d.tl.Len(), "total", total, "interval", d.interval)

	for {
		select {
		case <-d.stop:
			d.finish(OutcomeCancelled)
			return
		case <-ctx.Done():
			d.finish(OutcomeCancelled)
			return
		case <-ticker.C:
			// A stop that raced the tick wins.
			select {
			case <-d.stop:
				d.finish(OutcomeCancelled)
				return
			case <-ctx.Done():
				d.finish(OutcomeCancelled)
				return
			default:
			}

			elapsed := time.Since(start)
			cue := d.tl.Resolve(elapsed)
			d.surf.Draw(func(dc *gg.Context) {
				cue.Scene.Render(dc, cue.Progress)
			})
			d.renders.Add(1)
			logging.TraceDefault("tick", "elapsed", elapsed, "scene", cue.Index, "progress", cue.Progress)

			if d.onProgress != nil {
				fraction := float64(elapsed) / float64(total)
				if fraction > 1 {
					fraction = 1
				}
				if fraction > lastReported {
					lastReported = fraction
					d.onProgress(fraction)
				}
			}

			if elapsed >= total {
				if d.onProgress != nil && lastReported < 1 {
					d.onProgress(1)
				}
				d.finish(OutcomeCompleted)
				return
			}
		}
	}
}

func (d *Driver) finish(o Outcome) {
	slog.Debug("animation finished", "outcome", o.String(), "frames", d.renders.Load())
	d.done <- o
}
