package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoHeader is returned by Read when the input has no header row.
var ErrNoHeader = errors.New("empty input: no header row")

const utf8BOM = "\ufeff"

// ReadOptions configures the delimited-text dialect accepted by Read.
type ReadOptions struct {
	Comma            rune
	LazyQuotes       bool
	TrimLeadingSpace bool
}

// WriteOptions configures the dialect produced by Write.
type WriteOptions struct {
	Comma   rune
	UseCRLF bool
}

// Read parses delimited text with the first row as header. Every data row
// must have as many fields as the header; a mismatch surfaces as a
// *csv.ParseError wrapping csv.ErrFieldCount. Blank lines are skipped.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.TrimLeadingSpace = opts.TrimLeadingSpace
	// Zero: the header fixes the width for every later record.
	reader.FieldsPerRecord = 0

	hdr, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrNoHeader
		}
		return nil, err
	}
	if len(hdr) > 0 {
		hdr[0] = strings.TrimPrefix(hdr[0], utf8BOM)
	}

	t := &Table{Columns: hdr}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, rec)
	}
}

// Write serializes t with the header first and no index column.
func Write(w io.Writer, t *Table, opts WriteOptions) error {
	if err := t.Validate(); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if opts.Comma != 0 {
		writer.Comma = opts.Comma
	}
	writer.UseCRLF = opts.UseCRLF

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
