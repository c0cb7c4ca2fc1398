// Package output renders command results for redelim.
//
// Supported formats:
//   - text: pandas-style preview tables, key-value pairs otherwise (default)
//   - json: pretty-printed JSON
//   - ndjson: newline-delimited JSON
//   - table: aligned columns without a row index
//   - yaml: YAML
//
// The format, jq query, JSONPath expression and related flags are attached
// to the command context in the root PersistentPreRunE and read back here:
//
//	ctx = output.WithFormat(ctx, format)
//	...
//	printer := output.NewPrinter(w, output.FormatFromContext(ctx))
//	return printer.Print(ctx, data)
//
// Values implementing Tabular are drawn as tables in the text and table
// formats unless a --query or --jsonpath selects part of them.
package output
