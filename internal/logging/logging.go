package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New builds a tint logger writing to w.
func New(w io.Writer, level slog.Level, color bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !color,
	}))
}

// Setup installs the process logger. An empty path logs to stderr; the
// returned closer releases the file, if any.
func Setup(levelName, path string) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}

	if path == "" {
		logger := New(os.Stderr, level, true)
		slog.SetDefault(logger)
		return logger, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := New(f, level, false)
	slog.SetDefault(logger)
	return logger, f.Close, nil
}

// Discard is a logger that drops everything.
func Discard() *slog.Logger {
	return New(io.Discard, slog.LevelError, false)
}
