package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	clierrors "github.com/salmonumbrella/redelim/internal/errors"
	"github.com/salmonumbrella/redelim/internal/output"
)

func validateErrorFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto", "text", "json", "yaml":
		return nil
	default:
		return clierrors.NewUserError(
			fmt.Sprintf("invalid --error-format %q", format),
			"Use one of: auto, text, json, yaml",
		)
	}
}

func effectiveErrorFormat(ctx context.Context) string {
	format := strings.ToLower(strings.TrimSpace(ErrorFormatFromContext(ctx)))
	if format == "" || format == "auto" {
		switch output.FormatFromContext(ctx) {
		case output.FormatJSON, output.FormatNDJSON:
			return "json"
		case output.FormatYAML:
			return "yaml"
		default:
			return "text"
		}
	}
	return format
}

func printCommandError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	switch effectiveErrorFormat(ctx) {
	case "json":
		enc := json.NewEncoder(stderrFromContext(ctx))
		enc.SetEscapeHTML(false)
		_ = enc.Encode(buildErrorEnvelope(err))
		return
	case "yaml":
		enc := yaml.NewEncoder(stderrFromContext(ctx))
		enc.SetIndent(2)
		_ = enc.Encode(buildErrorEnvelope(err))
		_ = enc.Close()
		return
	}

	_, _ = fmt.Fprintln(stderrFromContext(ctx), "Error:", err)
	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		_, _ = fmt.Fprintf(stderrFromContext(ctx), "Hint: %s\n", suggestion)
	}
}

func buildErrorEnvelope(err error) map[string]interface{} {
	errMap := map[string]interface{}{
		"message":   err.Error(),
		"exit_code": ExitCode(err),
	}

	category := "system"
	switch ExitCode(err) {
	case ExitUser, ExitNotFound, ExitPermission, ExitParse:
		category = "user"
	case ExitCanceled:
		category = "canceled"
	}
	errMap["category"] = category

	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		errMap["suggestion"] = suggestion
	}

	var nf *clierrors.NotFoundError
	if errors.As(err, &nf) {
		errMap["type"] = "not_found"
		errMap["path"] = nf.Path
	}

	var perm *clierrors.PermissionError
	if errors.As(err, &perm) {
		errMap["type"] = "permission"
		errMap["path"] = perm.Path
		errMap["op"] = perm.Op
	}

	var pe *clierrors.ParseError
	if errors.As(err, &pe) {
		errMap["type"] = "parse"
		errMap["path"] = pe.Path
		if pe.Line > 0 {
			errMap["line"] = pe.Line
		}
		if pe.Column > 0 {
			errMap["column"] = pe.Column
		}
	}

	var validationErr *clierrors.ValidationError
	if errors.As(err, &validationErr) {
		errMap["type"] = "validation"
		errMap["field"] = validationErr.Field
	}

	return map[string]interface{}{"error": errMap}
}
