package cmdutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/salmonumbrella/redelim/internal/iocontext"
)

// ResolveQuery returns the jq expression from --query or --query-file.
// An inline value starting with "@" names a file, and "-" reads stdin.
func ResolveQuery(ctx context.Context, query, queryFile string) (string, error) {
	if query != "" && queryFile != "" {
		return "", fmt.Errorf("use only one of --query or --query-file")
	}

	if queryFile != "" {
		return ReadInputSource(ctx, queryFile)
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "-" {
		return ReadInputSource(ctx, "-")
	}
	if strings.HasPrefix(trimmed, "@") {
		return ReadInputSource(ctx, trimmed[1:])
	}
	return query, nil
}

// ReadInputSource reads a file, or stdin when path is "-", and trims
// surrounding whitespace.
func ReadInputSource(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("input file path is required")
	}
	if path == "-" {
		data, err := io.ReadAll(iocontext.StdinOrDefault(ctx, os.Stdin))
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ResolvePath picks the positional path argument, then the configured
// default, then fallback.
func ResolvePath(args []string, configured, fallback string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	return fallback
}
