// Package cmdutil provides shared flags and the pipeline runner used by
// rollcall commands.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/rollcall"
)

// SelectionFlags holds the filter values given on the command line.
type SelectionFlags struct {
	Statuses []string
	Cycles   []string
	NoPrompt bool
}

// AddSelectionFlags adds --status, --cycle and --no-prompt to a command.
func AddSelectionFlags(cmd *cobra.Command) *SelectionFlags {
	flags := &SelectionFlags{}

	cmd.Flags().StringArrayVar(&flags.Statuses, "status", nil,
		"Keep rows with this status (repeatable); skips the status prompt")
	cmd.Flags().StringArrayVar(&flags.Cycles, "cycle", nil,
		"Keep rows with this completion cycle (repeatable); skips the cycle prompt")
	cmd.Flags().BoolVar(&flags.NoPrompt, "no-prompt", false,
		"Never prompt; selections not given as flags mean no filter")

	return flags
}

// Options converts the flags to pipeline options. Values given here are
// validated against the allow-lists when the pipeline runs.
func (f *SelectionFlags) Options() []rollcall.Option {
	if f == nil {
		return nil
	}
	var opts []rollcall.Option
	if statuses := nonEmpty(f.Statuses); len(statuses) > 0 {
		opts = append(opts, rollcall.WithStatuses(statuses...))
	}
	if cycles := nonEmpty(f.Cycles); len(cycles) > 0 {
		opts = append(opts, rollcall.WithCycles(cycles...))
	}
	return opts
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
