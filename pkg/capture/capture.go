package capture

import (
	"context"

	"github.com/CrusoO/CodeSensei/pkg/model"
	"github.com/CrusoO/CodeSensei/pkg/surface"
)

// Options control how a capture stream encodes its output.
type Options struct {
	FPS       int
	Encoder   string
	Quality   int
	OutputDir string
}

// Backend opens capture streams over a surface. Implementations report
// startup failures from Open so callers can fall back before animating.
type Backend interface {
	Open(ctx context.Context, surf *surface.Surface, opts Options) (Stream, error)
}

// Stream is one running capture session. The expected sequence is Start,
// then either Stop (finalize into an artifact) or Abort (discard).
type Stream interface {
	// Start launches frame sampling. It returns immediately.
	Start(ctx context.Context)
	// Ready returns a channel closed once the first frame has been
	// written, which confirms the encoder process accepted input.
	Ready() <-chan struct{}
	// Stop ends sampling, waits for the encoder to finalize and returns
	// the finished artifact.
	Stop() (*model.Artifact, error)
	// Abort ends sampling and discards any partial output.
	Abort()
}
