package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/info-backend/internal/config"
)

// NewLogger creates the process logger on os.Stderr and installs it as the
// slog default. Every entry carries the service name and build version.
//
// Format "json" produces structured output; "text" is human-readable and
// includes source locations. Unknown levels fall back to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg).With(
		slog.String("service", "info-backend"),
		slog.String("version", Version),
	)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(strings.TrimSpace(cfg.Format), "text"),
	}

	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
