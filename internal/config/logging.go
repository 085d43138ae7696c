package config

import (
	"io"
	"log/slog"
	"strings"
)

// SlogLevel converts the configured level name, defaulting to info.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
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

// NewLogger builds the process logger. "both" writes text to stdout and
// JSON to stderr.
func (l LoggingConfig) NewLogger(stdout, stderr io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	switch strings.ToLower(l.Format) {
	case "text":
		return slog.New(slog.NewTextHandler(stdout, opts))
	case "json":
		return slog.New(slog.NewJSONHandler(stderr, opts))
	default:
		return slog.New(slog.NewMultiHandler(
			slog.NewTextHandler(stdout, opts),
			slog.NewJSONHandler(stderr, opts),
		))
	}
}
