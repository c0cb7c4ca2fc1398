package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is the human-readable default.
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON format.
	FormatJSON Format = "json"
	// FormatNDJSON is newline-delimited JSON format.
	FormatNDJSON Format = "ndjson"
	// FormatTable is aligned columns without a row index.
	FormatTable Format = "table"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format type.
// Empty string defaults to FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatNDJSON, "jsonl":
		return FormatNDJSON, nil
	case FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --output format (expected text|json|ndjson|jsonl|table|yaml)")
	}
}

// Printer handles output formatting across different formats.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a new Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		w:      w,
		format: format,
	}
}

// Print outputs data in the configured format, after applying any
// --jsonpath selection and --query filter found in ctx.
func (p *Printer) Print(ctx context.Context, data interface{}) error {
	if data == nil {
		return nil
	}

	if path := JSONPathFromContext(ctx); path != "" {
		selected, err := applyJSONPath(data, path)
		if err != nil {
			return err
		}
		data = selected
	}

	switch p.format {
	case FormatJSON:
		return p.printJSON(ctx, data)
	case FormatNDJSON:
		return p.printNDJSON(ctx, data)
	case FormatYAML:
		return p.printYAML(ctx, data)
	case FormatTable:
		return p.printTable(ctx, data)
	case FormatText:
		return p.printText(ctx, data)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

func (p *Printer) printYAML(ctx context.Context, data interface{}) error {
	if query := QueryFromContext(ctx); query != "" {
		results, err := runQueryRaw(query, data)
		if err != nil {
			return err
		}
		data = collapse(results)
	}

	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

func (p *Printer) printTable(ctx context.Context, data interface{}) error {
	if t, ok := asTable(data); ok && QueryFromContext(ctx) == "" {
		return p.printGrid(t, false)
	}
	return p.printGeneric(ctx, data, false)
}

// printText draws Tabular values as indexed grids and everything else as
// key-value pairs, or a table for lists of objects.
func (p *Printer) printText(ctx context.Context, data interface{}) error {
	if t, ok := asTable(data); ok && QueryFromContext(ctx) == "" {
		return p.printGrid(t, t.Index)
	}
	return p.printGeneric(ctx, data, true)
}

func asTable(data interface{}) (Table, bool) {
	switch v := data.(type) {
	case Table:
		return v, true
	case *Table:
		if v == nil {
			return Table{}, false
		}
		return *v, true
	case Tabular:
		return v.OutputTable(), true
	}
	return Table{}, false
}

func (p *Printer) printGeneric(ctx context.Context, data interface{}, withIndex bool) error {
	var err error
	if query := QueryFromContext(ctx); query != "" {
		var results []interface{}
		results, err = runQueryRaw(query, data)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return nil
		}
		data = collapse(results)
	} else {
		data, err = normalizeToInterface(data)
		if err != nil {
			return err
		}
	}

	switch v := data.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		return p.printKeyValues(v)
	case []interface{}:
		if t, ok := tableFromObjects(v); ok {
			return p.printGrid(t, withIndex)
		}
		for _, item := range v {
			if _, err := fmt.Fprintln(p.w, formatCell(item)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(p.w, formatCell(v))
		return err
	}
}

// printKeyValues outputs a map as key-value pairs sorted by key.
func (p *Printer) printKeyValues(m map[string]interface{}) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(p.w, "%s: %s\n", k, formatCell(m[k])); err != nil {
			return err
		}
	}
	return nil
}

// tableFromObjects builds a grid from a list of objects, with the union of
// their keys as sorted headers.
func tableFromObjects(items []interface{}) (Table, bool) {
	if len(items) == 0 {
		return Table{}, false
	}
	seen := make(map[string]bool)
	var headers []string
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return Table{}, false
		}
		for k := range m {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	sort.Strings(headers)

	t := Table{Headers: headers}
	for _, item := range items {
		m := item.(map[string]interface{})
		row := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := m[h]; ok {
				row[i] = formatCell(v)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, true
}

// formatCell renders a scalar plainly and nested values as compact JSON.
func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NaN"
	case string:
		return x
	case float64:
		return formatNumber(x)
	case map[string]interface{}, []interface{}:
		buf, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(buf)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) && f < 1e15 && f > -1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func collapse(results []interface{}) interface{} {
	if len(results) == 1 {
		return results[0]
	}
	return results
}
