package codec

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := map[string]Compression{
		"bank-full.csv":     None,
		"bank-full.csv.gz":  Gzip,
		"bank-full.CSV.GZ":  Gzip,
		"bank-full.csv.zst": Zstd,
		"data.zstd":         Zstd,
		"noext":             None,
	}
	for path, want := range tests {
		assert.Equal(t, want, Detect(path), path)
	}
	assert.Equal(t, "gzip", Gzip.String())
	assert.Equal(t, "none", None.String())
}

func roundTrip(t *testing.T, name string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	payload := []byte("age,job\n35,technician\n")

	w, err := Create(path)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, payload, got)
}

func TestRoundTripPlain(t *testing.T) { roundTrip(t, "out.csv") }
func TestRoundTripGzip(t *testing.T)  { roundTrip(t, "out.csv.gz") }
func TestRoundTripZstd(t *testing.T)  { roundTrip(t, "out.csv.zst") }

func TestGzipIsReadableByStdlib(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv.gz")
	w, err := Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "a,b\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	got, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(got))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOpenCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv.gz")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not gzip"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestCreateKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("old contents that are longer"), 0o640))

	w, err := Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "new")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}
