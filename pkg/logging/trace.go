package logging

import "log/slog"

// EnableTrace is a variable to enable/disable trace logs.
// Default is false to reduce noise.
var EnableTrace = false

// TraceDefault logs a message to the default logger at DEBUG level, but only
// if EnableTrace is true. This allows "super debug" logs that are skipped
// cheaply, such as the animator's per-tick output.
func TraceDefault(msg string, args ...any) {
	if EnableTrace {
		slog.Debug(msg, args...)
	}
}
