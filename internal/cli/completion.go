package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Cobra generates the
// scripts; this just routes the shell argument to the right generator.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for collage and print it to stdout.

Source the output directly for the current session:

  source <(collage completion bash)
  collage completion fish | source

Or install it where the shell picks it up on start, for example:

  collage completion bash > /etc/bash_completion.d/collage
  collage completion zsh  > "${fpath[1]}/_collage"
  collage completion fish > ~/.config/fish/completions/collage.fish

PowerShell users can add the output to their profile:

  collage completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
