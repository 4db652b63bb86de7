// Package logging provides structured logging configuration using log/slog.
//
// Edit sessions tag their entries with a session ID, so one Setup call in
// main is enough to correlate everything a round trip logs.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// Logs go to stderr so they never mix with table output on stdout.
// Use "json" format when the output feeds log tooling.
func Setup(level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// WithFields returns a logger with additional structured fields.
//
// This is useful for creating operation-specific loggers that carry
// consistent context through a multi-step process.
//
// Usage:
//
//	sessionLogger := logging.WithFields(
//	    "session_id", sessionID,
//	    "path", path,
//	)
//	sessionLogger.Info("session started")
//	// ... later ...
//	sessionLogger.Info("session finished", "rows", len(rows))
func WithFields(args ...any) *slog.Logger {
	return slog.Default().With(args...)
}
