// Package logging configures the process-wide slog default. The TUI
// owns the terminal, so log output goes to a file instead of stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup installs the default logger. With verbose off everything is
// discarded; with verbose on, debug-level JSON records go to path.
// The returned closer flushes the log file on shutdown.
func Setup(path string, verbose bool) (io.Closer, error) {
	if !verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
