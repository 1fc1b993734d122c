package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// newLogger builds the process logger. Logs never go to stdout. The
// returned closer releases the log file, if any.
func newLogger(config Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if config.LogLevel != "" {
		if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
		}
	}

	out := stderr
	var closer io.Closer = nopCloser{}
	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(config.LogFormat) {
	case "", "text":
		handler = slog.NewTextHandler(out, opts)
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		_ = closer.Close()
		return nil, nil, fmt.Errorf("invalid log format %q (want text or json)", config.LogFormat)
	}

	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
