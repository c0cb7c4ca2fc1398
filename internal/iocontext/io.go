// Package iocontext provides context-based stdin/stdout/stderr injection for testable I/O.
package iocontext

import (
	"context"
	"io"
)

type ctxKey int

const (
	stdoutKey ctxKey = iota
	stderrKey
	stdinKey
)

// WithIO injects stdout and stderr writers into context.
func WithIO(ctx context.Context, stdout, stderr io.Writer) context.Context {
	ctx = context.WithValue(ctx, stdoutKey, stdout)
	ctx = context.WithValue(ctx, stderrKey, stderr)
	return ctx
}

// WithStdin injects a stdin reader into context.
func WithStdin(ctx context.Context, stdin io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey, stdin)
}

// Stdout returns the stdout writer from context, or nil if not set.
func Stdout(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey).(io.Writer); ok {
		return w
	}
	return nil
}

// Stderr returns the stderr writer from context, or nil if not set.
func Stderr(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stderrKey).(io.Writer); ok {
		return w
	}
	return nil
}

// Stdin returns the stdin reader from context, or nil if not set.
func Stdin(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey).(io.Reader); ok {
		return r
	}
	return nil
}

// StdoutOrDefault returns stdout from context or the provided default.
func StdoutOrDefault(ctx context.Context, def io.Writer) io.Writer {
	if w := Stdout(ctx); w != nil {
		return w
	}
	return def
}

// StderrOrDefault returns stderr from context or the provided default.
func StderrOrDefault(ctx context.Context, def io.Writer) io.Writer {
	if w := Stderr(ctx); w != nil {
		return w
	}
	return def
}

// StdinOrDefault returns stdin from context or the provided default.
func StdinOrDefault(ctx context.Context, def io.Reader) io.Reader {
	if r := Stdin(ctx); r != nil {
		return r
	}
	return def
}
