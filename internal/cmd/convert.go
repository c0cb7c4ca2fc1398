package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/redelim/internal/cmdutil"
	"github.com/salmonumbrella/redelim/internal/config"
	"github.com/salmonumbrella/redelim/internal/convert"
	clierrors "github.com/salmonumbrella/redelim/internal/errors"
	"github.com/salmonumbrella/redelim/internal/output"
	"github.com/salmonumbrella/redelim/internal/table"
	"github.com/salmonumbrella/redelim/internal/ui"
	"github.com/salmonumbrella/redelim/internal/validate"
)

type convertFlags struct {
	delimiter    string
	outDelimiter string
	outFile      string
	rows         int
	noPreview    bool
	dryRun       bool
	lazyQuotes   bool
	trimSpace    bool
}

func defaultConvertFlags() convertFlags {
	return convertFlags{
		delimiter:    string(convert.DefaultDelimiter),
		outDelimiter: string(convert.DefaultOutputDelimiter),
		rows:         table.DefaultPreviewRows,
	}
}

func newConvertCmd() *cobra.Command {
	flags := defaultConvertFlags()

	cmd := &cobra.Command{
		Use:     "convert [path]",
		Aliases: []string{"c"},
		Short:   "Rewrite a delimited file with another delimiter",
		Long: `Read a delimited text table, rewrite it with the output delimiter and
print the first records.

The file is overwritten in place unless --out-file is given. Files ending
in .gz or .zst are decompressed on read and compressed on write.`,
		Example: `  redelim convert
  redelim convert data.csv -d tab -D comma
  redelim convert data.csv.gz -O data.csv --rows 10
  redelim convert data.csv --dry-run -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.delimiter, "delimiter", "d", flags.delimiter, "Source delimiter (character, or comma|semicolon|tab|pipe|space)")
	f.StringVarP(&flags.outDelimiter, "out-delimiter", "D", flags.outDelimiter, "Output delimiter")
	f.StringVarP(&flags.outFile, "out-file", "O", "", "Write to this path instead of overwriting the input")
	f.IntVarP(&flags.rows, "rows", "n", flags.rows, "Number of records to preview")
	f.BoolVar(&flags.noPreview, "no-preview", false, "Do not print the preview")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Parse and report without writing")
	f.BoolVar(&flags.lazyQuotes, "lazy-quotes", false, "Accept stray quotes inside unquoted fields")
	f.BoolVar(&flags.trimSpace, "trim-space", false, "Trim leading space in fields")

	flagAlias(f, "out-file", "output-file")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, flags convertFlags) error {
	ctx := cmd.Context()
	cfg := ConfigFromContext(ctx)

	opts, rows, err := resolveConvertOptions(cmd, cfg, args, flags)
	if err != nil {
		return err
	}

	res, err := convert.Convert(ctx, opts)
	if err != nil {
		return err
	}
	res.WithPreview(rows)

	if opts.DryRun {
		dry := NewDryRunPrinter(stderrFromContext(ctx))
		action := "write"
		if res.InPlace {
			action = "overwrite"
		}
		dry.Header(action, res.Output)
		dry.Change("delimiter", validate.DelimiterName(opts.Delimiter), validate.DelimiterName(opts.OutputDelimiter))
		dry.Field("records", strconv.Itoa(res.Records))
		dry.Field("columns", strconv.Itoa(len(res.Columns)))
		dry.Footer()
	} else if !output.QuietFromContext(ctx) {
		ui.FromContext(ctx).Success("%s", res.String())
	}

	return printResult(cmd, res, flags.noPreview)
}

// resolveConvertOptions merges command flags over config over defaults.
func resolveConvertOptions(cmd *cobra.Command, cfg *config.Config, args []string, flags convertFlags) (convert.Options, int, error) {
	opts := convert.Options{
		Input:            cmdutil.ResolvePath(args, cfg.Input, convert.DefaultInput),
		Output:           flags.outFile,
		LazyQuotes:       flags.lazyQuotes,
		TrimLeadingSpace: flags.trimSpace,
		DryRun:           flags.dryRun,
	}

	var err error
	opts.Delimiter, err = resolveDelimiter(cmd, "delimiter", flags.delimiter, cfg.Delimiter)
	if err != nil {
		return opts, 0, err
	}
	opts.OutputDelimiter, err = resolveDelimiter(cmd, "out-delimiter", flags.outDelimiter, cfg.OutDelimiter)
	if err != nil {
		return opts, 0, err
	}

	rows := flags.rows
	if !cmd.Flags().Changed("rows") {
		rows = cfg.GetPreviewRows(flags.rows)
	}
	if err := validate.PreviewRows(rows); err != nil {
		return opts, 0, clierrors.WrapUserError(err, "invalid --rows", "Pass a number between 0 and 10000")
	}
	return opts, rows, nil
}

func resolveDelimiter(cmd *cobra.Command, name, flagValue, configured string) (rune, error) {
	value := flagValue
	if !cmd.Flags().Changed(name) && configured != "" {
		value = configured
	}
	r, err := validate.Delimiter(name, value)
	if err != nil {
		return 0, clierrors.InvalidDelimiterError("--"+name, value, err.Error())
	}
	return r, nil
}

// printResult writes the run summary. Text and table output show only the
// preview grid, which --no-preview suppresses.
func printResult(cmd *cobra.Command, res *convert.Result, noPreview bool) error {
	ctx := cmd.Context()
	format := output.FormatFromContext(ctx)
	plain := format == output.FormatText || format == output.FormatTable
	filtered := output.QueryFromContext(ctx) != "" || output.JSONPathFromContext(ctx) != ""
	if noPreview && plain && !filtered {
		return nil
	}
	return printerForContext(ctx).Print(ctx, (*resultView)(res))
}

// resultView renders a convert.Result as a preview grid in text and table
// output and as the full summary envelope elsewhere.
type resultView convert.Result

func (r *resultView) OutputTable() output.Table {
	t := output.Table{Headers: r.Columns, Index: true}
	for _, rec := range r.Preview {
		row := rec.Values()
		for i, v := range row {
			if v == "" {
				row[i] = "NaN"
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
