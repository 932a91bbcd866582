// Package completion provides the completion command.
package completion

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/rollcall/internal/cmd/constants"
)

// NewCommand creates the completion command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

Bash:

  $ source <(rollcall completion bash)

Zsh:

  $ rollcall completion zsh > "${fpath[1]}/_rollcall"

Fish:

  $ rollcall completion fish | source

PowerShell:

  PS> rollcall completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             constants.Shells(),
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case constants.ShellBash:
				return cmd.Root().GenBashCompletionV2(out, true)
			case constants.ShellZsh:
				return cmd.Root().GenZshCompletion(out)
			case constants.ShellFish:
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
