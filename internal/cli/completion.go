package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// completionGenerators maps shell names to cobra's script generators.
var completionGenerators = map[string]func(*cobra.Command, io.Writer) error{
	"bash": (*cobra.Command).GenBashCompletion,
	"zsh":  (*cobra.Command).GenZshCompletion,
	"fish": func(cmd *cobra.Command, w io.Writer) error {
		return cmd.GenFishCompletion(w, true)
	},
	"powershell": (*cobra.Command).GenPowerShellCompletionWithDesc,
}

// completionCommand emits shell completion scripts for the root command.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell.

Load it once for the current session:

  bash:        source <(delvemap completion bash)
  zsh:         source <(delvemap completion zsh)
  fish:        delvemap completion fish | source
  powershell:  delvemap completion powershell | Out-String | Invoke-Expression

To install permanently, write the script where your shell picks it up, e.g.:

  delvemap completion bash > /etc/bash_completion.d/delvemap
  delvemap completion zsh  > "${fpath[1]}/_delvemap"
  delvemap completion fish > ~/.config/fish/completions/delvemap.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
