package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/cmd/application"
	"github.com/agentstation/rollcall/internal/cmd/output"
	"github.com/agentstation/rollcall/internal/report"
)

// Spec describes what a command runs.
type Spec struct {
	// StopAfter is the last stage to run.
	StopAfter rollcall.Stage

	// Selection, when set, supplies filter values and controls prompting.
	Selection *SelectionFlags

	// Dispatch hands the resolved contacts to the configured dispatcher.
	Dispatch bool
}

// Run builds a pipeline from app and spec, runs it, and writes the report
// to the command's output.
func Run(cmd *cobra.Command, app application.Application, spec Spec) (*rollcall.Result, error) {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = output.DetectFormat("")
	}

	out := cmd.OutOrStdout()
	rep := report.New(out, format,
		report.WithMaxRows(app.MaxRows()),
		report.WithNoColor(app.NoColor()))

	opts, err := app.PipelineOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		rollcall.WithLogger(app.Logger()),
		rollcall.WithReporter(rep),
		rollcall.WithStopAfter(spec.StopAfter),
	)
	opts = append(opts, spec.Selection.Options()...)

	if spec.Selection != nil && !spec.Selection.NoPrompt {
		promptOut := out
		if format.Structured() {
			promptOut = cmd.ErrOrStderr()
		}
		if p := app.Prompter(promptOut); p != nil {
			opts = append(opts, rollcall.WithPrompter(p))
		}
	}

	// The dispatcher is built first so a broken mail setup fails before any
	// stage runs.
	if spec.Dispatch {
		d, err := app.Dispatcher()
		if err != nil {
			return nil, err
		}
		if d != nil {
			opts = append(opts, rollcall.WithDispatcher(d))
		}
	}

	p, err := rollcall.New(opts...)
	if err != nil {
		return nil, err
	}

	res, runErr := p.Run(cmd.Context())
	if res.Ran(rollcall.StageReportExceptions) {
		if err := rep.Flush(); err != nil && runErr == nil {
			return res, fmt.Errorf("writing report: %w", err)
		}
	}
	return res, runErr
}
