package pipeline

import "errors"

// Sentinel errors returned by Generate. Callers match them with errors.Is;
// the wrapped chain carries the underlying cause.
var (
	// ErrInvalidRequest means the scene list was empty or malformed.
	ErrInvalidRequest = errors.New("invalid generation request")
	// ErrGenerationInProgress means another session is already running.
	ErrGenerationInProgress = errors.New("generation already in progress")
	// ErrSurfaceInit means the drawing surface could not be created.
	ErrSurfaceInit = errors.New("surface initialization failed")
	// ErrStreamInit means the capture stream could not be opened.
	ErrStreamInit = errors.New("capture stream initialization failed")
	// ErrFallback means the static-image fallback failed after the stream
	// was already unavailable.
	ErrFallback = errors.New("fallback capture failed")
	// ErrAssembly means the capture stream could not finalize its output.
	ErrAssembly = errors.New("artifact assembly failed")
	// ErrCancelled means the session was cancelled before completion.
	ErrCancelled = errors.New("generation cancelled")
)
