package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/CrusoO/CodeSensei/pkg/config"
	"github.com/CrusoO/CodeSensei/pkg/logging"
	"github.com/CrusoO/CodeSensei/pkg/pipeline"
	"github.com/CrusoO/CodeSensei/pkg/probe"
	"github.com/CrusoO/CodeSensei/pkg/tracker"

	"github.com/joho/godotenv"
)

var (
	configPath = flag.String("config", "configs/codesensei.yaml", "Path to the config file")
	scenesPath = flag.String("scenes", "configs/scenes.yaml", "Path to the scene descriptor file")
	width      = flag.Int("width", 0, "Override render width")
	height     = flag.Int("height", 0, "Override render height")
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
	trace      = flag.Bool("trace", false, "Enable per-tick trace logging")
)

func main() {
	flag.Parse()

	// Handle --init-config flag
	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated:", *configPath)
		return
	}

	if err := run(context.Background()); err != nil {
		if errors.Is(err, pipeline.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Generation cancelled")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Generation failed: %v\n", err)
		if last := strings.TrimSpace(logging.GlobalLogCapture.GetLastLine()); last != "" {
			fmt.Fprintf(os.Stderr, "Last log line: %s\n", last)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// .env is optional, flags and config take precedence
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *width > 0 {
		cfg.Render.Width = *width
	}
	if *height > 0 {
		cfg.Render.Height = *height
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()
	logging.EnableTrace = *trace

	slog.Info("CodeSensei Started", "config", *configPath)

	// Startup Probes
	probes := []probe.Probe{
		probe.OutputDir(cfg.Capture.OutputDir),
		probe.FFmpeg(),
		probe.FontFile(cfg.Render.FontPath),
	}
	results := probe.Run(ctx, probes)
	if err := probe.AnalyzeResults(results); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	scenes, err := config.LoadScenes(*scenesPath)
	if err != nil {
		return fmt.Errorf("failed to load scenes: %w", err)
	}

	tr := tracker.New()
	p := pipeline.New(cfg, nil, tr)

	// Ctrl+C cancels the session; a second signal kills the process.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			slog.Info("Interrupt received, cancelling")
			p.Cancel()
		case <-ctx.Done():
		}
	}()

	res, err := p.Generate(ctx, pipeline.Request{
		Scenes: scenes,
		OnProgress: func(pct int) {
			fmt.Printf("\rProgress: %3d%%", pct)
			if pct == 100 {
				fmt.Println()
			}
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Artifact: %s (%s)\n", res.Artifact.Reference, res.Artifact.ContentType)
	if res.Artifact.ThumbnailRef != "" {
		fmt.Printf("Thumbnail: %s\n", res.Artifact.ThumbnailRef)
	}
	if res.ForcedStart {
		slog.Warn("Recording started before the capture stream was ready")
	}

	stats := tr.Snapshot()
	slog.Info("Session stats",
		"frames", stats.FramesRendered,
		"fallbacks", stats.Fallbacks,
		"forced_starts", stats.ForcedStarts)

	return nil
}
