package capture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/CrusoO/CodeSensei/pkg/model"
	"github.com/CrusoO/CodeSensei/pkg/surface"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// FFmpegBackend encodes captures by piping raw RGBA frames into an ffmpeg
// child process.
type FFmpegBackend struct{}

// NewFFmpegBackend returns the ffmpeg-based capture backend.
func NewFFmpegBackend() *FFmpegBackend {
	return &FFmpegBackend{}
}

// Open locates ffmpeg, prepares the output file and starts the encoder
// process. No frames are written until Start.
func (b *FFmpegBackend) Open(ctx context.Context, surf *surface.Surface, opts Options) (Stream, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid capture fps %d", opts.FPS)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(opts.OutputDir, "walkthrough-"+id+".mp4")
	w, h := surf.Size()

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", w, h),
		"-framerate", fmt.Sprintf("%d", opts.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", opts.Encoder,
	}

	switch opts.Encoder {
	case "h264_videotoolbox":
		args = append(args, "-b:v", fmt.Sprintf("%dk", opts.Quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", opts.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", opts.Quality), "-preset", "medium")
	}
	args = append(args, path)

	cmd := exec.Command("ffmpeg", args...)
	s := &ffmpegStream{
		cmd:   cmd,
		surf:  surf,
		fps:   opts.FPS,
		path:  path,
		id:    id,
		ready: make(chan struct{}),
		quit:  make(chan struct{}),
	}
	cmd.Stderr = &s.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open encoder stdin: %w", err)
	}
	s.stdin = stdin

	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	slog.Debug("capture stream opened", "path", path, "encoder", opts.Encoder, "fps", opts.FPS)
	return s, nil
}

type ffmpegStream struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	surf  *surface.Surface
	fps   int
	path  string
	id    string

	ready     chan struct{}
	readyOnce sync.Once
	quit      chan struct{}
	quitOnce  sync.Once
	group     errgroup.Group
	stderr    bytes.Buffer
}

func (s *ffmpegStream) Start(ctx context.Context) {
	s.group.Go(func() error {
		return s.sample(ctx)
	})
}

func (s *ffmpegStream) Ready() <-chan struct{} {
	return s.ready
}

// sample snapshots the surface at the configured rate and feeds frames to
// the encoder until the stream is stopped.
func (s *ffmpegStream) sample(ctx context.Context) error {
	interval := time.Second / time.Duration(s.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			frame := s.surf.SnapshotRGBA()
			if _, err := s.stdin.Write(frame.Pix); err != nil {
				return fmt.Errorf("failed to write frame: %w", err)
			}
			s.readyOnce.Do(func() {
				close(s.ready)
			})
		}
	}
}

func (s *ffmpegStream) signalQuit() {
	s.quitOnce.Do(func() {
		close(s.quit)
	})
}

// Stop ends sampling, closes the pipe so ffmpeg finalizes the container and
// returns the artifact.
func (s *ffmpegStream) Stop() (*model.Artifact, error) {
	s.signalQuit()
	sampleErr := s.group.Wait()
	s.stdin.Close()

	if err := s.cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg exited with error: %w: %s", err, s.stderr.String())
	}
	if sampleErr != nil {
		return nil, fmt.Errorf("frame sampling failed: %w", sampleErr)
	}

	slog.Debug("capture stream finalized", "path", s.path)
	return &model.Artifact{
		ID:          s.id,
		Reference:   s.path,
		ContentType: model.ContentTypeVideo,
		CreatedAt:   time.Now(),
	}, nil
}

// Abort ends sampling, kills the encoder and removes any partial output.
func (s *ffmpegStream) Abort() {
	s.signalQuit()
	_ = s.group.Wait()
	s.stdin.Close()

	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove partial capture", "path", s.path, "error", err)
	}
	slog.Debug("capture stream aborted", "path", s.path)
}
