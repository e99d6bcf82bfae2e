// Package logger provides structured logging for the application on top of
// log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"ridehail/internal/config"
)

// Setup builds the application logger from the server config and installs it
// as the slog default. Output goes to stdout.
func Setup(cfg config.ServerConfig) *slog.Logger {
	return New(os.Stdout, cfg)
}

// New builds a logger writing to w. An unknown level falls back to info and
// is reported once through the new logger.
func New(w io.Writer, cfg config.ServerConfig) *slog.Logger {
	level, known := ParseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	if !known {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}
	return logger
}

// ParseLevel maps a case-insensitive level name to a slog.Level. The second
// result is false when the name is not recognised.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Discard returns a logger that drops every record. Handy as a default for
// optional logger dependencies.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
