package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CrusoO/CodeSensei/pkg/capture"
	"github.com/CrusoO/CodeSensei/pkg/surface"
	"github.com/CrusoO/CodeSensei/pkg/timeline"

	"github.com/fogleman/gg"
)

// defaultFallbackSamples is used when the configured sample count is not
// positive.
const defaultFallbackSamples = 60

// runFallback produces a static-image artifact when no capture stream is
// available. The timeline is sampled at evenly spaced instants without a
// clock, so the run takes only as long as the rendering itself, and the
// final sample becomes the saved still.
func (p *Pipeline) runFallback(ctx context.Context, tl *timeline.Timeline, surf *surface.Surface, sink *progressSink, cancelCh <-chan struct{}) (*Result, error) {
	n := p.cfg.Fallback.Samples
	if n <= 0 {
		n = defaultFallbackSamples
	}

	p.setState(StateRecording)
	slog.Info("fallback capture starting", "samples", n)

	for i := 0; i < n; i++ {
		select {
		case <-cancelCh:
			return p.cancelled()
		case <-ctx.Done():
			return p.cancelled()
		default:
		}

		frac := 1.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		elapsed := time.Duration(frac * float64(tl.Total()))
		cue := tl.Resolve(elapsed)

		if err := renderSample(surf, cue); err != nil {
			return p.fail(fmt.Errorf("%w: sample %d: %w", ErrFallback, i, err))
		}
		sink.Report(5 + (i+1)*90/n)
	}
	p.stats.TrackFramesRendered(int64(n))

	p.setState(StateFinalizing)
	artifact, err := capture.SaveStill(surf, p.cfg.Capture.OutputDir)
	if err != nil {
		return p.fail(fmt.Errorf("%w: %w", ErrFallback, err))
	}
	p.attachThumbnail(surf, artifact)

	sink.Finish()
	p.setState(StateCompleted)
	p.stats.TrackCompleted()
	slog.Info("fallback capture completed", "artifact", artifact.Reference)

	return &Result{
		Artifact:       artifact,
		FramesRendered: int64(n),
	}, nil
}

// renderSample isolates one render call so a panicking scene fails the
// session instead of the process.
func renderSample(surf *surface.Surface, cue timeline.Cue) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scene renderer panicked: %v", r)
		}
	}()
	surf.Draw(func(dc *gg.Context) {
		cue.Scene.Render(dc, cue.Progress)
	})
	return nil
}
