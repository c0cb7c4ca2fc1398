// Package convert rewrites a delimited table with a different delimiter.
package convert

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/salmonumbrella/redelim/internal/codec"
	clierrors "github.com/salmonumbrella/redelim/internal/errors"
	"github.com/salmonumbrella/redelim/internal/table"
)

const (
	DefaultInput           = "Datasets/bank-full.csv"
	DefaultDelimiter       = ';'
	DefaultOutputDelimiter = ','
)

// Options configures a conversion. Zero delimiters fall back to the
// defaults and an empty Output means the input is rewritten in place.
type Options struct {
	Input            string
	Output           string
	Delimiter        rune
	OutputDelimiter  rune
	LazyQuotes       bool
	TrimLeadingSpace bool
	DryRun           bool
}

// Result summarizes a conversion or an inspection of the input.
type Result struct {
	Input           string   `json:"input" yaml:"input"`
	Output          string   `json:"output,omitempty" yaml:"output,omitempty"`
	Delimiter       string   `json:"delimiter" yaml:"delimiter"`
	OutputDelimiter string   `json:"out_delimiter,omitempty" yaml:"out_delimiter,omitempty"`
	Columns         []string `json:"columns" yaml:"columns"`
	Records         int      `json:"records" yaml:"records"`
	// BytesWritten counts the uncompressed bytes handed to the output.
	BytesWritten int64 `json:"bytes_written" yaml:"bytes_written"`
	InPlace      bool  `json:"in_place" yaml:"in_place"`
	DryRun       bool  `json:"dry_run" yaml:"dry_run"`

	Preview []table.Record `json:"preview" yaml:"preview"`

	Table *table.Table `json:"-" yaml:"-"`
}

// WithPreview fills Preview with the first n records of the parsed table.
func (r *Result) WithPreview(n int) *Result {
	r.Preview = nil
	if r.Table == nil {
		return r
	}
	cur := r.Table.Preview(n)
	r.Preview = make([]table.Record, 0, min(max(n, 0), r.Table.Len()))
	for cur.Next() {
		r.Preview = append(r.Preview, cur.Record())
	}
	return r
}

func (o Options) withDefaults() Options {
	if o.Input == "" {
		o.Input = DefaultInput
	}
	if o.Output == "" {
		o.Output = o.Input
	}
	if o.Delimiter == 0 {
		o.Delimiter = DefaultDelimiter
	}
	if o.OutputDelimiter == 0 {
		o.OutputDelimiter = DefaultOutputDelimiter
	}
	return o
}

// Load parses the input without writing anything.
func Load(ctx context.Context, opts Options) (*table.Table, error) {
	opts = opts.withDefaults()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := codec.Open(opts.Input)
	if err != nil {
		return nil, classifyReadError(opts.Input, err)
	}
	defer func() { _ = r.Close() }()

	t, err := table.Read(r, table.ReadOptions{
		Comma:            opts.Delimiter,
		LazyQuotes:       opts.LazyQuotes,
		TrimLeadingSpace: opts.TrimLeadingSpace,
	})
	if err != nil {
		return nil, classifyReadError(opts.Input, err)
	}

	slog.Debug("parsed input",
		"path", opts.Input,
		"compression", codec.Detect(opts.Input).String(),
		"columns", t.NumColumns(),
		"records", t.Len(),
	)
	return t, nil
}

// Convert parses the input fully, closes it, then truncates and rewrites
// the output with the output delimiter. The output is left untouched when
// parsing fails, the context is canceled before writing, or DryRun is set.
func Convert(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	t, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	res := summarize(opts, t)
	res.Output = opts.Output
	res.OutputDelimiter = string(opts.OutputDelimiter)
	res.InPlace = opts.Output == opts.Input
	res.DryRun = opts.DryRun
	if opts.DryRun {
		slog.Debug("dry run, output not written", "path", opts.Output)
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := writeTable(opts.Output, t, opts.OutputDelimiter)
	if err != nil {
		return nil, err
	}
	res.BytesWritten = n

	slog.Debug("wrote output",
		"path", opts.Output,
		"compression", codec.Detect(opts.Output).String(),
		"bytes", n,
		"in_place", res.InPlace,
	)
	return res, nil
}

// Inspect parses the input and summarizes it without writing anything.
func Inspect(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	t, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return summarize(opts, t), nil
}

func summarize(opts Options, t *table.Table) *Result {
	return &Result{
		Input:     opts.Input,
		Delimiter: string(opts.Delimiter),
		Columns:   t.Columns,
		Records:   t.Len(),
		Table:     t,
	}
}

func writeTable(path string, t *table.Table, comma rune) (int64, error) {
	w, err := codec.Create(path)
	if err != nil {
		return 0, clierrors.ClassifyFileError("write", path, err)
	}

	cw := &countingWriter{w: w}
	werr := table.Write(cw, t, table.WriteOptions{Comma: comma})
	cerr := w.Close()
	if werr != nil {
		return cw.n, clierrors.ClassifyFileError("write", path, werr)
	}
	if cerr != nil {
		return cw.n, clierrors.ClassifyFileError("write", path, cerr)
	}
	return cw.n, nil
}

// classifyReadError maps parse and file errors from the read phase into the
// CLI error taxonomy.
func classifyReadError(path string, err error) error {
	var csvErr *csv.ParseError
	switch {
	case errors.As(err, &csvErr):
		return &clierrors.ParseError{Path: path, Line: csvErr.Line, Column: csvErr.Column, Err: csvErr.Err}
	case errors.Is(err, table.ErrNoHeader):
		return &clierrors.ParseError{Path: path, Err: err}
	case errors.Is(err, codec.ErrCorrupt):
		return &clierrors.ParseError{Path: path, Err: err}
	default:
		return clierrors.ClassifyFileError("read", path, err)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// String renders a one-line summary for status messages.
func (r *Result) String() string {
	if r.DryRun {
		return fmt.Sprintf("would write %d records (%d columns) to %s", r.Records, len(r.Columns), r.Output)
	}
	return fmt.Sprintf("wrote %d records (%d columns) to %s", r.Records, len(r.Columns), r.Output)
}
