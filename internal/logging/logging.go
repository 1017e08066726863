// Package logging configures the launcher's diagnostic logger. User-facing
// progress goes straight to stderr; this slog logger carries structured
// diagnostics (state transitions, probe failures, degraded paths) at a
// level configurable via `log.level` or ROBUSTLS_LOG_LEVEL.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a config string to a slog level. Unknown values fall back
// to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a text logger on stderr at the given level.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
