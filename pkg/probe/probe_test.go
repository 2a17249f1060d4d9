package probe

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestRun_And_Analyze(t *testing.T) {
	probes := []Probe{
		{Name: "ok", Check: func(context.Context) error { return nil }},
		{Name: "warn", Check: func(context.Context) error { return errors.New("soft failure") }},
	}

	results := Run(context.Background(), probes)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Error != nil {
		t.Errorf("probe ok failed: %v", results[0].Error)
	}
	if results[1].Error == nil {
		t.Error("probe warn should have failed")
	}

	// Non-critical failures don't block startup.
	if err := AnalyzeResults(results); err != nil {
		t.Errorf("AnalyzeResults returned error for non-critical failure: %v", err)
	}
}

func TestAnalyzeResults_Critical(t *testing.T) {
	results := Run(context.Background(), []Probe{
		{Name: "hard", Critical: true, Check: func(context.Context) error { return errors.New("boom") }},
	})
	if err := AnalyzeResults(results); err == nil {
		t.Error("critical failure should propagate")
	}
}

func TestOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")
	p := OutputDir(dir)

	if err := p.Check(context.Background()); err != nil {
		t.Errorf("OutputDir check failed: %v", err)
	}
}

func TestFontFile(t *testing.T) {
	if err := FontFile("").Check(context.Background()); err != nil {
		t.Errorf("empty font path should pass: %v", err)
	}
	if err := FontFile("/nonexistent/font.ttf").Check(context.Background()); err == nil {
		t.Error("missing font file should fail")
	}
}
