package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/redelim/internal/convert"
	"github.com/salmonumbrella/redelim/internal/table"
)

func newPreviewCmd() *cobra.Command {
	flags := defaultConvertFlags()

	cmd := &cobra.Command{
		Use:     "preview [path]",
		Aliases: []string{"head", "p"},
		Short:   "Print the first records of a delimited file without writing",
		Example: `  redelim preview
  redelim preview data.csv -d comma -n 10
  redelim preview data.csv -o json -q '.preview[].age'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, rows, err := resolveConvertOptions(cmd, ConfigFromContext(ctx), args, flags)
			if err != nil {
				return err
			}
			res, err := convert.Inspect(ctx, opts)
			if err != nil {
				return err
			}
			return printResult(cmd, res.WithPreview(rows), false)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.delimiter, "delimiter", "d", flags.delimiter, "Source delimiter (character, or comma|semicolon|tab|pipe|space)")
	f.IntVarP(&flags.rows, "rows", "n", table.DefaultPreviewRows, "Number of records to print")
	f.BoolVar(&flags.lazyQuotes, "lazy-quotes", false, "Accept stray quotes inside unquoted fields")
	f.BoolVar(&flags.trimSpace, "trim-space", false, "Trim leading space in fields")

	return cmd
}
