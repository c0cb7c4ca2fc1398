package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/redelim/internal/cmdutil"
	"github.com/salmonumbrella/redelim/internal/config"
	clierrors "github.com/salmonumbrella/redelim/internal/errors"
	"github.com/salmonumbrella/redelim/internal/iocontext"
	"github.com/salmonumbrella/redelim/internal/logging"
	"github.com/salmonumbrella/redelim/internal/output"
	"github.com/salmonumbrella/redelim/internal/ui"
)

// EnvOutput overrides the configured output format.
const EnvOutput = "REDELIM_OUTPUT"

type globalFlagInput struct {
	queryFlag    string
	queryFile    string
	jsonPathFlag string
	errorFormat  string
	logFormat    string
	quietFlag    bool
	compactJSON  bool
	debugMode    bool
}

type globalOptions struct {
	format          output.Format
	query           string
	queryNormalized bool
	jsonPathRaw     string
	quiet           bool
	compactJSON     bool
	debug           bool
	logFormat       logging.Format
	color           ui.ColorMode
	errorFormat     string

	queryFlagSet     bool
	queryFileFlagSet bool
}

func parseGlobalOptions(cmd *cobra.Command, cfg *config.Config, app *App, flags globalFlagInput) (globalOptions, error) {
	opts := globalOptions{
		quiet:       flags.quietFlag,
		compactJSON: flags.compactJSON,
		debug:       flags.debugMode,
		errorFormat: flags.errorFormat,

		queryFlagSet:     strings.TrimSpace(flags.queryFlag) != "",
		queryFileFlagSet: strings.TrimSpace(flags.queryFile) != "",
		jsonPathRaw:      strings.TrimSpace(flags.jsonPathFlag),
	}

	outputFlagSet := commandFlagChanged(cmd, "output") || commandFlagChanged(cmd, "format")
	formatStr, _ := cmd.Flags().GetString("output")
	jsonFlag, _ := cmd.Flags().GetBool("json")
	switch {
	case jsonFlag:
		formatStr = string(output.FormatJSON)
	case outputFlagSet:
	case strings.TrimSpace(os.Getenv(EnvOutput)) != "":
		formatStr = os.Getenv(EnvOutput)
	case cfg.GetOutput() != "":
		formatStr = cfg.GetOutput()
	}

	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return globalOptions{}, clierrors.NewUserError(err.Error(), "Use one of: text, json, ndjson, jsonl, table, yaml")
	}
	opts.format = format

	// Machine-readable output piped elsewhere does not need status lines.
	if !commandFlagChanged(cmd, "quiet") && !isTerminal(app.stdout()) {
		switch opts.format {
		case output.FormatJSON, output.FormatNDJSON, output.FormatYAML:
			opts.quiet = true
		}
	}

	if opts.queryFlagSet && opts.queryFileFlagSet {
		return globalOptions{}, errOnlyOne("--query", "--query-file")
	}
	stdinCtx := iocontext.WithStdin(cmd.Context(), app.stdin())
	query, err := cmdutil.ResolveQuery(stdinCtx, flags.queryFlag, flags.queryFile)
	if err != nil {
		return globalOptions{}, err
	}
	opts.query, opts.queryNormalized = output.NormalizeQuery(query)

	logFormat := flags.logFormat
	if !commandFlagChanged(cmd, "log-format") && cfg.LogFormat != "" {
		logFormat = cfg.LogFormat
	}
	opts.logFormat, err = logging.ParseFormat(logFormat)
	if err != nil {
		return globalOptions{}, clierrors.NewUserError(err.Error(), "Use one of: text, json")
	}

	opts.color, err = ui.ParseColorMode(cfg.GetColor())
	if err != nil {
		return globalOptions{}, clierrors.NewUserError(err.Error(), "Fix it with: redelim config set color auto")
	}

	return opts, nil
}

func validateGlobalOptions(opts *globalOptions) error {
	if opts.query != "" && opts.jsonPathRaw != "" {
		return errOnlyOne("--query/--query-file", "--jsonpath")
	}
	if opts.query != "" {
		if err := output.ValidateQuery(opts.query); err != nil {
			return err
		}
	}
	return validateErrorFormat(opts.errorFormat)
}

func buildRootContext(ctx context.Context, app *App, cfg *config.Config, opts globalOptions) context.Context {
	ctx = iocontext.WithIO(ctx, app.stdout(), app.stderr())
	ctx = iocontext.WithStdin(ctx, app.stdin())
	ctx = output.WithFormat(ctx, opts.format)
	ctx = output.WithQuery(ctx, opts.query)
	ctx = output.WithJSONPath(ctx, opts.jsonPathRaw)
	ctx = output.WithQuiet(ctx, opts.quiet)
	ctx = output.WithCompactJSON(ctx, opts.compactJSON)
	ctx = WithErrorFormat(ctx, opts.errorFormat)
	ctx = WithConfig(ctx, cfg)
	ctx = ui.WithUI(ctx, ui.NewWithWriter(opts.color, app.stderr()))
	return ctx
}

func errOnlyOne(left, right string) error {
	return clierrors.NewUserError(
		fmt.Sprintf("use only one of %s or %s", left, right),
		"Remove one of the flags",
	)
}

func commandFlagChanged(cmd *cobra.Command, name string) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if flag := current.Flags().Lookup(name); flag != nil && flag.Changed {
			return true
		}
		if flag := current.PersistentFlags().Lookup(name); flag != nil && flag.Changed {
			return true
		}
	}
	return false
}
