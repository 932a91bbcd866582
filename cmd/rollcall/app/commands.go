package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/rollcall/cmd/rollcall/cmd/check"
	"github.com/agentstation/rollcall/cmd/rollcall/cmd/completion"
	"github.com/agentstation/rollcall/cmd/rollcall/cmd/exceptions"
	"github.com/agentstation/rollcall/cmd/rollcall/cmd/run"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(run.NewCommand(a))
	rootCmd.AddCommand(check.NewCommand(a))
	rootCmd.AddCommand(exceptions.NewCommand(a))

	rootCmd.AddCommand(completion.NewCommand())
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("rollcall %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
