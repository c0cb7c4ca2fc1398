// Package codec opens delimited files for reading and writing, transparently
// handling gzip and zstd compression chosen by file extension.
package codec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrCorrupt marks a compressed stream that could not be decoded.
var ErrCorrupt = errors.New("corrupt compressed stream")

// Compression identifies the stream encoding of a file.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return "none"
	}
}

// Detect returns the compression implied by path's extension.
func Detect(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	default:
		return None
	}
}

// Open opens path for reading. Errors from os.Open are returned unwrapped so
// callers can classify them with errors.Is.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch Detect(path) {
	case Gzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%w: gzip: %w", ErrCorrupt, err)
		}
		return &readCloser{r: &corruptReader{r: gz}, closers: []func() error{gz.Close, f.Close}}, nil
	case Zstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		return &readCloser{r: &corruptReader{r: dec}, closers: []func() error{
			func() error { dec.Close(); return nil },
			f.Close,
		}}, nil
	default:
		return f, nil
	}
}

// Create opens path for writing, truncating an existing file and keeping
// its permission bits. New files are created with mode 0644.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	switch Detect(path) {
	case Gzip:
		gz := gzip.NewWriter(f)
		return &writeCloser{w: gz, closers: []func() error{gz.Close, f.Close}}, nil
	case Zstd:
		enc, err := zstd.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return &writeCloser{w: enc, closers: []func() error{enc.Close, f.Close}}, nil
	default:
		return f, nil
	}
}

// corruptReader tags decoder failures with ErrCorrupt.
type corruptReader struct {
	r io.Reader
}

func (c *corruptReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if err != nil && err != io.EOF {
		err = fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return n, err
}

type readCloser struct {
	r       io.Reader
	closers []func() error
}

func (rc *readCloser) Read(p []byte) (int, error) { return rc.r.Read(p) }

func (rc *readCloser) Close() error { return closeAll(rc.closers) }

type writeCloser struct {
	w       io.Writer
	closers []func() error
}

func (wc *writeCloser) Write(p []byte) (int, error) { return wc.w.Write(p) }

func (wc *writeCloser) Close() error { return closeAll(wc.closers) }

// closeAll runs every closer in order and returns the first error.
func closeAll(closers []func() error) error {
	var first error
	for _, c := range closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
