package main

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog.Logger on stdout. Debug builds add the
// source location of each record.
func NewLogger(debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts)).With("app", "region-capture")
}
