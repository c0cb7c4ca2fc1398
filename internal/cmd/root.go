package cmd

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/salmonumbrella/redelim/internal/config"
	clierrors "github.com/salmonumbrella/redelim/internal/errors"
	"github.com/salmonumbrella/redelim/internal/logging"
	"github.com/salmonumbrella/redelim/internal/ui"
)

//go:embed help.txt
var rootHelpText string

func newRootCmd(app *App) *cobra.Command {
	var flags globalFlagInput

	rootCmd := &cobra.Command{
		Use:   "redelim",
		Short: "Rewrite delimited text tables with a new delimiter",
		Long: `redelim reads a delimited text table, rewrites it with another delimiter
and prints the first rows. Without a subcommand it converts
Datasets/bank-full.csv in place from ';' to ','.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Error output is printed centrally by App.Execute.
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			// Config commands must work even when the file is broken.
			cfg := &config.Config{}
			if !isConfigCommand(cmd) {
				loaded, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = loaded
			}

			opts, err := parseGlobalOptions(cmd, cfg, app, flags)
			if err != nil {
				return err
			}
			if err := validateGlobalOptions(&opts); err != nil {
				return err
			}

			logging.Configure(opts.debug, opts.logFormat, app.stderr())

			ctx := buildRootContext(cmd.Context(), app, cfg, opts)
			if opts.queryNormalized && !opts.quiet {
				ui.FromContext(ctx).Warning("Normalized --query by removing \\! (shell escape); use ! without backslash.")
			}
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, nil, defaultConvertFlags())
		},
	}

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetOut(app.stdout())
	rootCmd.SetErr(app.stderr())

	rootCmd.Version = app.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("redelim %s (commit: %s, built: %s)\n", app.Version, app.Commit, app.BuildTime))
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewUserError(err.Error(), fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})

	pf := rootCmd.PersistentFlags()
	pf.StringP("output", "o", "text", "Output format: text|json|ndjson|jsonl|table|yaml")
	pf.BoolP("json", "j", false, "Shorthand for --output json")
	pf.StringVarP(&flags.queryFlag, "query", "q", "", "JQ expression to filter output")
	pf.StringVar(&flags.queryFile, "query-file", "", "Read JQ expression from file ('-' for stdin)")
	pf.StringVar(&flags.jsonPathFlag, "jsonpath", "", "Extract a value using JSONPath (e.g. $.preview[0].age)")
	pf.BoolVar(&flags.compactJSON, "compact-json", false, "Output compact JSON (single-line) instead of pretty JSON")
	pf.BoolVar(&flags.quietFlag, "quiet", false, "Suppress status lines on stderr")
	pf.BoolVar(&flags.debugMode, "debug", false, "Enable debug logging on stderr")
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log format (text|json)")
	pf.StringVar(&flags.errorFormat, "error-format", "auto", "Error output format (auto|text|json|yaml)")

	flagAlias(pf, "output", "format")
	flagAlias(pf, "query", "jq")
	flagAlias(pf, "query-file", "qf")
	flagAlias(pf, "compact-json", "cj")

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMCPCmd(app))
	rootCmd.AddCommand(newCompletionCmd())

	installRootHelp(rootCmd)

	return rootCmd
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func installRootHelp(root *cobra.Command) {
	defaultHelp := root.HelpFunc()

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			defaultHelp(cmd, args)
			return
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), rootHelpText)
	})
}
