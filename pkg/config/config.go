package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the engine configuration.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Capture  CaptureConfig  `yaml:"capture"`
	Fallback FallbackConfig `yaml:"fallback"`
	Log      LogConfig      `yaml:"log"`
}

// RenderConfig holds raster surface and animation driver settings.
type RenderConfig struct {
	Width        int      `yaml:"width"`
	Height       int      `yaml:"height"`
	TickInterval Duration `yaml:"tick_interval"`
	FontPath     string   `yaml:"font_path"`   // optional TTF for scene text
	FontPoints   float64  `yaml:"font_points"` // ignored when font_path is empty
}

// CaptureConfig holds capture stream settings.
type CaptureConfig struct {
	FPS          int      `yaml:"fps"`
	Encoder      string   `yaml:"encoder"`
	Quality      int      `yaml:"quality"` // CRF for libx264
	ReadyTimeout Duration `yaml:"ready_timeout"`
	OutputDir    string   `yaml:"output_dir"`
}

// FallbackConfig holds settings for the stream-independent fallback path.
type FallbackConfig struct {
	Samples int `yaml:"samples"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Engine LogSettings `yaml:"engine"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Width:        1280,
			Height:       720,
			TickInterval: Duration(16 * time.Millisecond),
			FontPoints:   16,
		},
		Capture: CaptureConfig{
			FPS:          24,
			Encoder:      "libx264",
			Quality:      23,
			ReadyTimeout: Duration(2 * time.Second),
			OutputDir:    "./output",
		},
		Fallback: FallbackConfig{
			Samples: 60,
		},
		Log: LogConfig{
			Engine: LogSettings{
				Path:  "./logs/engine.log",
				Level: "INFO",
			},
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT
// save back to disk (to preserve user formatting and comments).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		// If file does not exist, save defaults
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to save config file: %w", err)
		}
	}

	applyEnvFallbacks(cfg)
	return cfg, nil
}

// applyEnvFallbacks fills paths that are usually machine-specific from the
// environment when the config leaves them empty.
func applyEnvFallbacks(cfg *Config) {
	if cfg.Capture.OutputDir == "" {
		if dir := os.Getenv("CODESENSEI_OUTPUT_DIR"); dir != "" {
			cfg.Capture.OutputDir = dir
		}
	}
	if cfg.Render.FontPath == "" {
		if font := os.Getenv("CODESENSEI_FONT_PATH"); font != "" {
			cfg.Render.FontPath = font
		}
	}
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# CodeSensei Engine Configuration
# -------------------------------
# Supported Duration units: ns, us (or µs), ms, s, m, h, d (day), w (week)

`)
	data = append(header, data...)

	// Inject comments for Enum fields
	reEncoder := regexp.MustCompile(`(?m)^(\s+)encoder:`)
	data = reEncoder.ReplaceAll(data, []byte("${1}# Options: libx264, h264_nvenc, h264_videotoolbox\n${1}encoder:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // File exists, do nothing
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
