// Package logging provides structured logging configuration using slog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the slog handler.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// ParseFormat maps a --log-format value to a Format. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid --log-format %q (expected text|json)", s)
	}
}

// Configure installs the global slog logger. Debug lowers the level from
// Info to Debug. Output goes to w, or os.Stderr when w is nil.
func Configure(debug bool, format Format, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler).With("app", "redelim"))
}

// Setup configures the global slog logger with text output.
func Setup(debug bool, w io.Writer) {
	Configure(debug, FormatText, w)
}

// SetupJSON configures the global slog logger with JSON output.
func SetupJSON(debug bool, w io.Writer) {
	Configure(debug, FormatJSON, w)
}
