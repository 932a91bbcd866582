// Package exceptions provides the exceptions command.
package exceptions

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/cmd/application"
	"github.com/agentstation/rollcall/internal/cmd/cmdutil"
)

// NewCommand creates the exceptions command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "exceptions",
		GroupID: "core",
		Short:   "List roster rows with blank or invalid fields",
		Long: `Exceptions loads the roster, checks every row against the status and
completion cycle allow-lists and for blank GPNs and names, and lists the
rows that fail with the reasons.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmdutil.Run(cmd, app, cmdutil.Spec{StopAfter: rollcall.StageReportExceptions})
			return err
		},
	}
}
