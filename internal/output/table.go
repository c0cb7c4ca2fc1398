package output

import (
	"fmt"
	"strconv"
	"text/tabwriter"
)

// Table is a pre-rendered grid of cells.
type Table struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
	// Index prepends an unnamed 0-based row number column in text output.
	Index bool `json:"-" yaml:"-"`
}

// Tabular is implemented by results that have a natural table rendering.
type Tabular interface {
	OutputTable() Table
}

// printGrid writes t with tabwriter. Text format right-aligns cells and adds
// the row index, the way dataframe previews look; table format is plain
// left-aligned columns.
func (p *Printer) printGrid(t Table, withIndex bool) error {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return nil
	}

	if !withIndex {
		tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
		writeRow(tw, t.Headers, false)
		for _, row := range t.Rows {
			writeRow(tw, row, false)
		}
		return tw.Flush()
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	writeRow(tw, append([]string{""}, t.Headers...), true)
	for i, row := range t.Rows {
		writeRow(tw, append([]string{strconv.Itoa(i)}, row...), true)
	}
	return tw.Flush()
}

// writeRow emits one line of cells. Right-aligned grids terminate every
// cell with a tab so the last column is aligned too.
func writeRow(tw *tabwriter.Writer, cells []string, terminate bool) {
	for i, cell := range cells {
		if i > 0 && !terminate {
			_, _ = fmt.Fprint(tw, "\t")
		}
		_, _ = fmt.Fprint(tw, cell)
		if terminate {
			_, _ = fmt.Fprint(tw, "\t")
		}
	}
	_, _ = fmt.Fprintln(tw)
}
