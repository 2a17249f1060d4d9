package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CrusoO/CodeSensei/pkg/animator"
	"github.com/CrusoO/CodeSensei/pkg/capture"
	"github.com/CrusoO/CodeSensei/pkg/config"
	"github.com/CrusoO/CodeSensei/pkg/model"
	"github.com/CrusoO/CodeSensei/pkg/surface"
	"github.com/CrusoO/CodeSensei/pkg/timeline"
	"github.com/CrusoO/CodeSensei/pkg/tracker"
)

// Request describes one generation session.
type Request struct {
	Scenes []model.SceneDescriptor
	// Width and Height override the configured render size when positive.
	Width  int
	Height int
	// OnProgress receives percentage updates in [0, 100]. Optional.
	// Values never decrease, and a successful session always reaches 100.
	OnProgress func(percent int)
}

// Result is the outcome of a successful session.
type Result struct {
	Artifact *model.Artifact
	// ForcedStart is true when recording began before the capture stream
	// confirmed readiness, so the first frames may be missing.
	ForcedStart    bool
	FramesRendered int64
}

// Pipeline runs generation sessions. Sessions are single-flight: Generate
// rejects callers while another session is in a non-terminal state.
type Pipeline struct {
	cfg     *config.Config
	backend capture.Backend
	stats   *tracker.Tracker

	state atomic.Int32

	mu         sync.Mutex
	cancelCh   chan struct{}
	cancelOnce *sync.Once
}

// New creates a pipeline. A nil backend selects the ffmpeg backend.
func New(cfg *config.Config, backend capture.Backend, stats *tracker.Tracker) *Pipeline {
	if backend == nil {
		backend = capture.NewFFmpegBackend()
	}
	if stats == nil {
		stats = tracker.New()
	}
	return &Pipeline{
		cfg:     cfg,
		backend: backend,
		stats:   stats,
	}
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Stats returns the tracker shared by all sessions.
func (p *Pipeline) Stats() *tracker.Tracker {
	return p.stats
}

// Cancel requests cancellation of the running session. It returns without
// waiting; the session settles within one tick interval and Generate
// returns ErrCancelled. Cancelling an idle pipeline is a no-op.
func (p *Pipeline) Cancel() {
	p.mu.Lock()
	ch, once := p.cancelCh, p.cancelOnce
	p.mu.Unlock()

	if ch == nil || once == nil {
		return
	}
	once.Do(func() {
		slog.Info("cancellation requested")
		close(ch)
	})
}

// Generate runs one session to completion and blocks until it reaches a
// terminal state. On success the artifact ownership transfers to the caller.
func (p *Pipeline) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	p.stats.TrackStarted()
	sink := newProgressSink(req.OnProgress)
	return p.run(ctx, req, sink)
}

// begin admits a new session or rejects it while one is in flight.
func (p *Pipeline) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := p.State()
	if cur != StateIdle && !cur.Terminal() {
		return ErrGenerationInProgress
	}
	p.cancelCh = make(chan struct{})
	p.cancelOnce = &sync.Once{}
	p.setState(StateInitializing)
	return nil
}

func (p *Pipeline) sessionCancel() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancelCh
}

func (p *Pipeline) setState(s State) {
	p.state.Store(int32(s))
	slog.Debug("pipeline state", "state", s.String())
}

func (p *Pipeline) run(ctx context.Context, req Request, sink *progressSink) (*Result, error) {
	cancelCh := p.sessionCancel()

	if len(req.Scenes) == 0 {
		return p.fail(fmt.Errorf("%w: scene list is empty", ErrInvalidRequest))
	}
	tl, err := timeline.FromDescriptors(req.Scenes)
	if err != nil {
		return p.fail(fmt.Errorf("%w: %w", ErrInvalidRequest, err))
	}

	w, h := p.cfg.Render.Width, p.cfg.Render.Height
	if req.Width > 0 {
		w = req.Width
	}
	if req.Height > 0 {
		h = req.Height
	}
	surf, err := surface.New(w, h)
	if err != nil {
		return p.fail(fmt.Errorf("%w: %w", ErrSurfaceInit, err))
	}
	if p.cfg.Render.FontPath != "" {
		if err := surf.LoadFontFace(p.cfg.Render.FontPath, p.cfg.Render.FontPoints); err != nil {
			slog.Warn("falling back to built-in font", "error", err)
		}
	}
	sink.Report(5)

	slog.Info("session starting",
		"scenes", tl.Len(),
		"total", tl.Total(),
		"size", fmt.Sprintf("%dx%d", w, h))

	stream, err := p.backend.Open(ctx, surf, capture.Options{
		FPS:       p.cfg.Capture.FPS,
		Encoder:   p.cfg.Capture.Encoder,
		Quality:   p.cfg.Capture.Quality,
		OutputDir: p.cfg.Capture.OutputDir,
	})
	if err != nil {
		slog.Warn("capture stream unavailable, using static capture", "error", fmt.Errorf("%w: %w", ErrStreamInit, err))
		p.stats.TrackFallback()
		return p.runFallback(ctx, tl, surf, sink, cancelCh)
	}

	stream.Start(ctx)

	// Soft handshake: wait for the first frame to land, but never block a
	// session on a slow encoder.
	forced := false
	select {
	case <-stream.Ready():
	case <-time.After(time.Duration(p.cfg.Capture.ReadyTimeout)):
		forced = true
		p.stats.TrackForcedStart()
		slog.Warn("capture stream not ready in time, forcing start", "timeout", time.Duration(p.cfg.Capture.ReadyTimeout))
	case <-cancelCh:
		stream.Abort()
		return p.cancelled()
	case <-ctx.Done():
		stream.Abort()
		return p.cancelled()
	}

	p.setState(StateRecording)
	driver := animator.New(tl, surf, time.Duration(p.cfg.Render.TickInterval), func(f float64) {
		sink.Report(5 + int(f*90))
	})
	driver.Start(ctx)

	var outcome animator.Outcome
	select {
	case outcome = <-driver.Done():
	case <-cancelCh:
		driver.Stop()
		outcome = <-driver.Done()
	case <-ctx.Done():
		driver.Stop()
		outcome = <-driver.Done()
	}
	p.stats.TrackFramesRendered(driver.RenderCount())

	if outcome == animator.OutcomeCancelled {
		stream.Abort()
		return p.cancelled()
	}

	p.setState(StateFinalizing)
	sink.Report(95)

	artifact, err := stream.Stop()
	if err != nil {
		return p.fail(fmt.Errorf("%w: %w", ErrAssembly, err))
	}
	p.attachThumbnail(surf, artifact)

	sink.Finish()
	p.setState(StateCompleted)
	p.stats.TrackCompleted()
	slog.Info("session completed", "artifact", artifact.Reference, "frames", driver.RenderCount(), "forced_start", forced)

	return &Result{
		Artifact:       artifact,
		ForcedStart:    forced,
		FramesRendered: driver.RenderCount(),
	}, nil
}

// attachThumbnail is best effort; a missing thumbnail never fails a session.
func (p *Pipeline) attachThumbnail(surf *surface.Surface, artifact *model.Artifact) {
	thumb, err := capture.SaveThumbnail(surf, p.cfg.Capture.OutputDir, artifact.ID)
	if err != nil {
		slog.Warn("failed to save thumbnail", "error", err)
		return
	}
	artifact.ThumbnailRef = thumb
}

func (p *Pipeline) fail(err error) (*Result, error) {
	p.setState(StateFailed)
	p.stats.TrackFailed()
	slog.Error("session failed", "error", err)
	return nil, err
}

func (p *Pipeline) cancelled() (*Result, error) {
	p.setState(StateCancelled)
	p.stats.TrackCancelled()
	slog.Info("session cancelled")
	return nil, ErrCancelled
}
