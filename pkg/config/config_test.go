package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codesensei.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Render.Width)
	assert.Equal(t, 720, cfg.Render.Height)
	assert.Equal(t, 24, cfg.Capture.FPS)
	assert.Equal(t, "libx264", cfg.Capture.Encoder)
	assert.Equal(t, 60, cfg.Fallback.Samples)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.Capture.ReadyTimeout))

	// The file should now exist with the injected header.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CodeSensei Engine Configuration")
	assert.Contains(t, string(data), "# Options: libx264")
}

func TestLoad_MergesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codesensei.yaml")
	partial := []byte("render:\n  width: 640\n  height: 480\ncapture:\n  fps: 30\n")
	require.NoError(t, os.WriteFile(path, partial, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden values win, missing ones keep defaults.
	assert.Equal(t, 640, cfg.Render.Width)
	assert.Equal(t, 480, cfg.Render.Height)
	assert.Equal(t, 30, cfg.Capture.FPS)
	assert.Equal(t, "libx264", cfg.Capture.Encoder)
	assert.Equal(t, 16*time.Millisecond, time.Duration(cfg.Render.TickInterval))
}

func TestLoad_EnvFallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codesensei.yaml")
	partial := []byte("capture:\n  output_dir: \"\"\n")
	require.NoError(t, os.WriteFile(path, partial, 0o644))

	t.Setenv("CODESENSEI_OUTPUT_DIR", "/tmp/artifacts")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/artifacts", cfg.Capture.OutputDir)
}

func TestLoad_EnvFallbacks_FreshConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codesensei.yaml")

	// FontPath defaults to empty, so the env fallback must apply even when
	// the config file is created from defaults on this load.
	t.Setenv("CODESENSEI_FONT_PATH", "/fonts/mono.ttf")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/fonts/mono.ttf", cfg.Render.FontPath)
}

func TestGenerateDefault_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codesensei.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  width: 100\n"), 0o644))

	require.NoError(t, GenerateDefault(path))

	// Must not overwrite the existing file.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "width: 100")
}

func TestLoadScenes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.yaml")
	content := []byte(`scenes:
  - kind: general_coding
    duration_ms: 2000
    params:
      title: "Demo"
  - kind: styling
    duration_ms: 1500
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	scenes, err := LoadScenes(path)
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, "Demo", scenes[0].Params.Title)
	assert.Equal(t, 1500, scenes[1].DurationMs)
}

func TestLoadScenes_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenes: []\n"), 0o644))

	_, err := LoadScenes(path)
	assert.Error(t, err)

	_, err = LoadScenes(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
