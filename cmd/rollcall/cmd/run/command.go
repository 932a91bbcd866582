// Package run provides the run command: the full reconciliation followed by
// the notification handoff.
package run

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/cmd/application"
	"github.com/agentstation/rollcall/internal/cmd/cmdutil"
)

// NewCommand creates the run command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	var selection *cmdutil.SelectionFlags

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "core",
		Short:   "Reconcile the roster and hand the contacts to the mailer",
		Long: `Run loads the roster and the team master, reports rows with data
problems, asks which statuses and completion cycles to keep, reduces the
result to one row per GPN, looks up each email address and composes one
message to everybody found.

With mail mode "draft" (the default) the message is saved as an .eml file
for review; with "smtp" it is sent and kept as a draft if sending fails;
with "none" nothing is composed.`,
		Example: `  rollcall run                                   # prompt for selections
  rollcall run --status Completed --no-prompt    # completed badges, any cycle
  rollcall run --mail-mode none -o json          # report only, as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmdutil.Run(cmd, app, cmdutil.Spec{
				StopAfter: rollcall.StageHandoff,
				Selection: selection,
				Dispatch:  true,
			})
			return err
		},
	}

	selection = cmdutil.AddSelectionFlags(cmd)
	return cmd
}
