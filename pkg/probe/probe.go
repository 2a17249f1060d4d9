package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// CheckFunc is a function that performs a health check.
// It returns nil if the check passes, or an error if it fails.
type CheckFunc func(ctx context.Context) error

// Probe represents a single startup check.
type Probe struct {
	Name     string
	Check    CheckFunc
	Critical bool // If true, a failure here should prevent application startup.
}

// Result holds the outcome of a single probe.
type Result struct {
	Probe    Probe
	Error    error
	Duration time.Duration
}

// checkTimeout bounds each individual check so a hung probe cannot stall
// startup indefinitely.
const checkTimeout = 5 * time.Second

// Run executes a list of probes and returns their results.
func Run(ctx context.Context, probes []Probe) []Result {
	results := make([]Result, len(probes))

	for i, p := range probes {
		start := time.Now()

		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)

		err := p.Check(checkCtx)
		cancel()

		results[i] = Result{
			Probe:    p,
			Error:    err,
			Duration: time.Since(start),
		}
	}

	return results
}

// AnalyzeResults aggregates the results and returns a combined error if critical probes failed.
// It also logs the results using the default slog logger.
func AnalyzeResults(results []Result) error {
	var criticalErrors []error
	passed := 0

	for _, r := range results {
		dur := r.Duration.Round(time.Millisecond)
		if r.Error != nil {
			slog.Error("startup check failed",
				"check", r.Probe.Name,
				"duration", dur,
				"critical", r.Probe.Critical,
				"error", r.Error)
			if r.Probe.Critical {
				criticalErrors = append(criticalErrors, fmt.Errorf("%s: %w", r.Probe.Name, r.Error))
			}
			continue
		}
		passed++
		slog.Info("startup check passed", "check", r.Probe.Name, "duration", dur)
	}

	slog.Info("startup checks done", "passed", passed, "failed", len(results)-passed)

	if len(criticalErrors) > 0 {
		return errors.Join(criticalErrors...)
	}

	return nil
}
