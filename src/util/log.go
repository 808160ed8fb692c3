package util

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger writing to w. Debug records are only written in verbose mode.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
