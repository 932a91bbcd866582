// Package check provides the check command, which reports the filtered and
// deduplicated roster without touching the team master.
package check

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/cmd/application"
	"github.com/agentstation/rollcall/internal/cmd/cmdutil"
)

// NewCommand creates the check command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	var selection *cmdutil.SelectionFlags

	cmd := &cobra.Command{
		Use:     "check",
		GroupID: "core",
		Short:   "Report exceptions and unique members without sending anything",
		Example: `  rollcall check --roster tracker.csv --cycle "FY26-Q1(July-Sep)" --no-prompt`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmdutil.Run(cmd, app, cmdutil.Spec{
				StopAfter: rollcall.StageDeduplicate,
				Selection: selection,
			})
			return err
		},
	}

	selection = cmdutil.AddSelectionFlags(cmd)
	return cmd
}
