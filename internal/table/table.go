// Package table holds a delimited text table in memory: a header row naming
// the columns and uniformly shaped rows of verbatim string fields.
//
// A Table is built by Read, serialized by Write, and previewed through a
// one-shot Cursor. Nothing in this package edits field values; the only
// interpretation of a field is Infer, which exists for display.
package table

import (
	"errors"
	"fmt"
)

// DefaultPreviewRows is the number of records shown after a conversion.
const DefaultPreviewRows = 5

// ErrRowWidth is returned by Validate and Write when a row does not have
// one field per column.
var ErrRowWidth = errors.New("row width does not match header")

// Table is an ordered collection of rows sharing one header.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New builds a table from a header and rows, enforcing the width invariant.
func New(columns []string, rows [][]string) (*Table, error) {
	t := &Table{Columns: columns, Rows: rows}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// NumColumns returns the number of header columns.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Len returns the number of records, excluding the header.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Record returns the i-th record bound to the header.
func (t *Table) Record(i int) Record {
	return Record{columns: t.Columns, values: t.Rows[i]}
}

// Validate checks that every row has exactly one field per column.
func (t *Table) Validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("record %d has %d fields, header has %d: %w", i+1, len(row), len(t.Columns), ErrRowWidth)
		}
	}
	return nil
}

// Head returns a table holding the first n records. The rows are shared
// with t, not copied.
func (t *Table) Head(n int) *Table {
	head := &Table{Columns: t.Columns}
	c := t.Preview(n)
	for c.Next() {
		head.Rows = append(head.Rows, c.Record().values)
	}
	return head
}

// Records returns every record of t in order.
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, t.Record(i))
	}
	return out
}
