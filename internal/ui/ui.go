// Package ui prints colored status lines for redelim on stderr.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	// ColorAuto detects color support from the terminal.
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output.
	ColorAlways
	// ColorNever disables all colored output.
	ColorNever
)

// ParseColorMode maps a --color or config value to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (expected auto|always|never)", s)
	}
}

type uiKey struct{}

// UI writes status messages, keeping stdout free for data.
type UI struct {
	out   *termenv.Output
	color ColorMode
}

// New creates a UI writing to os.Stderr.
func New(mode ColorMode) *UI {
	return NewWithWriter(mode, os.Stderr)
}

// NewWithWriter creates a UI writing to w. NO_COLOR in the environment
// always disables color.
func NewWithWriter(mode ColorMode, w io.Writer) *UI {
	if os.Getenv("NO_COLOR") != "" {
		mode = ColorNever
	}

	var profile termenv.Profile
	switch mode {
	case ColorNever:
		profile = termenv.Ascii
	case ColorAlways:
		profile = termenv.ANSI
	default:
		profile = termenv.NewOutput(w).EnvColorProfile()
	}

	return &UI{
		out:   termenv.NewOutput(w, termenv.WithProfile(profile)),
		color: mode,
	}
}

// WithUI returns a new context with the UI instance attached.
func WithUI(ctx context.Context, ui *UI) context.Context {
	return context.WithValue(ctx, uiKey{}, ui)
}

// FromContext retrieves the UI from ctx, or a ColorAuto stderr UI.
func FromContext(ctx context.Context) *UI {
	if ui, ok := ctx.Value(uiKey{}).(*UI); ok {
		return ui
	}
	return New(ColorAuto)
}

// Success prints a green line.
func (u *UI) Success(format string, args ...any) {
	u.line("✓ ", termenv.ANSIGreen, format, args...)
}

// Warning prints a yellow line.
func (u *UI) Warning(format string, args ...any) {
	u.line("⚠ ", termenv.ANSIYellow, format, args...)
}

// Error prints a red line.
func (u *UI) Error(format string, args ...any) {
	u.line("✗ ", termenv.ANSIRed, format, args...)
}

// Info prints a blue line.
func (u *UI) Info(format string, args ...any) {
	u.line("ℹ ", termenv.ANSIBlue, format, args...)
}

func (u *UI) line(prefix string, color termenv.ANSIColor, format string, args ...any) {
	msg := prefix + fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(u.out, u.out.String(msg).Foreground(color))
}

// Writer returns the underlying writer.
func (u *UI) Writer() io.Writer {
	return u.out
}
