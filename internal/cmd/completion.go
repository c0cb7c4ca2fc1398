package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for redelim.

To load completions:

Bash:
  $ source <(redelim completion bash)

Zsh:
  $ redelim completion zsh > "${fpath[1]}/_redelim"

Fish:
  $ redelim completion fish > ~/.config/fish/completions/redelim.fish

PowerShell:
  PS> redelim completion powershell | Out-String | Invoke-Expression
`,
	}

	cmd.AddCommand(newCompletionShellCmd("bash", func(root *cobra.Command, w io.Writer) error {
		return root.GenBashCompletionV2(w, true)
	}))
	cmd.AddCommand(newCompletionShellCmd("zsh", func(root *cobra.Command, w io.Writer) error {
		return root.GenZshCompletion(w)
	}))
	cmd.AddCommand(newCompletionShellCmd("fish", func(root *cobra.Command, w io.Writer) error {
		return root.GenFishCompletion(w, true)
	}))
	cmd.AddCommand(newCompletionShellCmd("powershell", func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	}))

	return cmd
}

func newCompletionShellCmd(shell string, gen func(*cobra.Command, io.Writer) error) *cobra.Command {
	return &cobra.Command{
		Use:   shell,
		Short: "Generate " + shell + " completion script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gen(cmd.Root(), stdoutFromContext(cmd.Context()))
		},
	}
}
