package probe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// FFmpeg checks that the ffmpeg binary is reachable. Not critical: the
// engine degrades to static captures without it.
func FFmpeg() Probe {
	return Probe{
		Name: "ffmpeg",
		Check: func(_ context.Context) error {
			path, err := exec.LookPath("ffmpeg")
			if err != nil {
				return fmt.Errorf("ffmpeg not found in PATH: %w", err)
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("ffmpeg not usable: %w", err)
			}
			return nil
		},
	}
}

// OutputDir checks that the artifact output directory is writable.
func OutputDir(dir string) Probe {
	return Probe{
		Name:     "output-dir",
		Critical: true,
		Check: func(_ context.Context) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("cannot create output directory: %w", err)
			}
			marker := filepath.Join(dir, ".probe")
			if err := os.WriteFile(marker, []byte("ok"), 0o644); err != nil {
				return fmt.Errorf("output directory not writable: %w", err)
			}
			return os.Remove(marker)
		},
	}
}

// FontFile checks that a configured font file exists. Not critical: the
// renderer falls back to the built-in bitmap font.
func FontFile(path string) Probe {
	return Probe{
		Name: "font-file",
		Check: func(_ context.Context) error {
			if path == "" {
				return nil
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("font file not found: %w", err)
			}
			return nil
		},
	}
}
