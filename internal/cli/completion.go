package cli

import (
	"io"
	"sort"

	"github.com/spf13/cobra"
)

// completionGenerators writes a completion script for the named shell.
var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

func completionShells() []string {
	shells := make([]string, 0, len(completionGenerators))
	for name := range completionGenerators {
		shells = append(shells, name)
	}
	sort.Strings(shells)
	return shells
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script",
		Long: `Print a completion script for bash, fish, powershell or zsh.

  source <(icview completion bash)
  icview completion zsh > "${fpath[1]}/_icview"
  icview completion fish > ~/.config/fish/completions/icview.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells(),
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
