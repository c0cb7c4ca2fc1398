package output

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/itchyny/gojq"

	clierrors "github.com/salmonumbrella/redelim/internal/errors"
)

// printJSON outputs data as JSON, pretty-printed unless compact output was
// requested. A jq query in the context filters the output.
func (p *Printer) printJSON(ctx context.Context, data interface{}) error {
	compact := CompactJSONFromContext(ctx)
	if query := QueryFromContext(ctx); query != "" {
		return p.runQuery(query, data, !compact)
	}

	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(data)
}

// printNDJSON outputs slices one element per line and anything else as a
// single line.
func (p *Printer) printNDJSON(ctx context.Context, data interface{}) error {
	if query := QueryFromContext(ctx); query != "" {
		return p.runQuery(query, data, false)
	}

	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		for i := 0; i < v.Len(); i++ {
			if err := enc.Encode(v.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	return enc.Encode(data)
}

// runQuery writes each jq result as one JSON document.
func (p *Printer) runQuery(query string, data interface{}, prettyPrint bool) error {
	results, err := runQueryRaw(query, data)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	if prettyPrint {
		enc.SetIndent("", "  ")
	}
	for _, v := range results {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// runQueryRaw normalizes data, runs a gojq query, and returns every result.
func runQueryRaw(query string, data interface{}) ([]interface{}, error) {
	// Idempotent; the root prerun hook already normalized.
	query, _ = NormalizeQuery(query)

	normalized, err := normalizeToInterface(data)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	code, err := compileQuery(query)
	if err != nil {
		return nil, err
	}

	var results []interface{}
	iter := code.Run(normalized)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if queryErr, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %s", safeErrorMessage(queryErr))
		}
		results = append(results, v)
	}
	return results, nil
}

// ValidateQuery reports whether query parses and compiles.
func ValidateQuery(query string) error {
	query, _ = NormalizeQuery(query)
	_, err := compileQuery(query)
	return err
}

func compileQuery(query string) (*gojq.Code, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, formatInvalidQueryErr(err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, formatInvalidQueryErr(err)
	}
	return code, nil
}

func formatInvalidQueryErr(err error) error {
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	if strings.Contains(msg, "unexpected eof") {
		return clierrors.WrapUserError(err, "invalid --query", "Query looks incomplete; quote it fully or use --query-file")
	}
	return clierrors.WrapUserError(err, "invalid --query", "Check the jq syntax, or pass it with --query-file")
}

// safeErrorMessage returns a best-effort string for errors whose Error
// method may panic (seen with some gojq runtime errors on typed values).
func safeErrorMessage(err error) (msg string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			msg = fmt.Sprintf("%T", err)
		}
	}()

	msg = strings.TrimSpace(err.Error())
	if msg == "" {
		return fmt.Sprintf("%T", err)
	}
	return msg
}
