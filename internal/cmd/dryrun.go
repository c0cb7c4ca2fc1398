package cmd

import (
	"fmt"
	"io"
)

// DryRunPrinter formats dry-run output on stderr.
type DryRunPrinter struct {
	w io.Writer
}

// NewDryRunPrinter creates a new DryRunPrinter that writes to the given writer.
func NewDryRunPrinter(w io.Writer) *DryRunPrinter {
	return &DryRunPrinter{w: w}
}

// Header prints the action that would be taken.
// Example: [DRY-RUN] Would overwrite Datasets/bank-full.csv
func (p *DryRunPrinter) Header(action, target string) {
	_, _ = fmt.Fprintf(p.w, "[DRY-RUN] Would %s %s\n", action, target)
}

// Field prints a single field with its value.
func (p *DryRunPrinter) Field(name, value string) {
	_, _ = fmt.Fprintf(p.w, "  %s: %s\n", name, value)
}

// Change prints a value that would change.
// Example:   delimiter: ";" -> ","
func (p *DryRunPrinter) Change(name, oldVal, newVal string) {
	if oldVal == newVal {
		_, _ = fmt.Fprintf(p.w, "  %s: %q (unchanged)\n", name, oldVal)
		return
	}
	_, _ = fmt.Fprintf(p.w, "  %s: %q -> %q\n", name, oldVal, newVal)
}

// Footer prints the footer message indicating no changes were made.
func (p *DryRunPrinter) Footer() {
	_, _ = fmt.Fprintf(p.w, "\n[DRY-RUN] No changes made.\n")
}
