package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/chocolatl/cocos-texture-packer/pkg/encoder"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	gen := map[string]func(root *cobra.Command, w io.Writer) error{
		"bash":       func(r *cobra.Command, w io.Writer) error { return r.GenBashCompletionV2(w, true) },
		"zsh":        func(r *cobra.Command, w io.Writer) error { return r.GenZshCompletion(w) },
		"fish":       func(r *cobra.Command, w io.Writer) error { return r.GenFishCompletion(w, true) },
		"powershell": func(r *cobra.Command, w io.Writer) error { return r.GenPowerShellCompletionWithDesc(w) },
	}

	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for texturepacker.

  $ source <(texturepacker completion bash)
  $ texturepacker completion zsh > "${fpath[1]}/_texturepacker"
  $ texturepacker completion fish > ~/.config/fish/completions/texturepacker.fish
  PS> texturepacker completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return gen[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeEncoders offers the registered encoder names for --encoder.
func completeEncoders(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return encoder.Names(), cobra.ShellCompDirectiveNoFileComp
}
