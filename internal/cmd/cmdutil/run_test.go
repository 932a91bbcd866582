package cmdutil_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/internal/cmd/application"
	"github.com/agentstation/rollcall/internal/cmd/cmdutil"
	"github.com/agentstation/rollcall/internal/report"
	"github.com/agentstation/rollcall/internal/sheets"
	"github.com/agentstation/rollcall/pkg/errors"
)

const rosterCSV = `GPN,Name,Status,Completion-Cycle
G1,Ann,Completed,FY26-Q1(July-Sep)
g1,ann,Completed,FY26-Q1(July-Sep)
G2,Bob,In Progress,FY26-Q2(Oct-Dec)
G3,,Done,FY26-Q1(July-Sep)
`

const contactsCSV = `GPN,Email ID
G1,ann@example.com
G2,
`

type recordingDispatcher struct {
	handoffs []rollcall.Handoff
}

func (d *recordingDispatcher) Dispatch(_ context.Context, h rollcall.Handoff) (*rollcall.Delivery, error) {
	d.handoffs = append(d.handoffs, h)
	return &rollcall.Delivery{Mode: "draft", Recipients: h.Recipients, DraftPath: "drafts/x.eml"}, nil
}

type scriptedPrompter struct {
	answers [][]string
}

func (p *scriptedPrompter) Select(_ context.Context, _ string, _ []string) ([]string, error) {
	if len(p.answers) == 0 {
		return nil, nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func writeInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	r := filepath.Join(dir, "roster.csv")
	c := filepath.Join(dir, "contacts.csv")
	require.NoError(t, os.WriteFile(r, []byte(rosterCSV), 0o600))
	require.NoError(t, os.WriteFile(c, []byte(contactsCSV), 0o600))
	return r, c
}

func newMock(t *testing.T) *application.Mock {
	r, c := writeInputs(t)
	return &application.Mock{
		PipelineOptionsFunc: func() ([]rollcall.Option, error) {
			return []rollcall.Option{
				rollcall.WithLoader(sheets.NewLoader()),
				rollcall.WithRoster(rollcall.Source{Path: r}),
				rollcall.WithContacts(rollcall.Source{Path: c}),
			}, nil
		},
	}
}

func newCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetContext(context.Background())
	return cmd, &buf
}

func TestRunFullPipeline(t *testing.T) {
	app := newMock(t)
	d := &recordingDispatcher{}
	app.DispatcherFunc = func() (rollcall.Dispatcher, error) { return d, nil }

	cmd, out := newCommand()
	res, err := cmdutil.Run(cmd, app, cmdutil.Spec{
		StopAfter: rollcall.StageHandoff,
		Selection: &cmdutil.SelectionFlags{NoPrompt: true},
		Dispatch:  true,
	})
	require.NoError(t, err)

	assert.Len(t, res.Exceptions, 1)
	assert.Len(t, res.Members, 3)
	require.Len(t, d.handoffs, 1)
	assert.Equal(t, []string{"ann@example.com"}, d.handoffs[0].Recipients)

	text := out.String()
	assert.Contains(t, text, report.HeadingExceptions)
	assert.Contains(t, text, "G3\tInvalid Status, Blank Name")
	assert.Contains(t, text, "Status: (no filter)")
	assert.Contains(t, text, "Unique GPNs: 3")
	assert.Contains(t, text, report.HeadingMissing+"\nG2\nG3\n")
	assert.Contains(t, text, "Saved email for 1 recipients for review.")
}

func TestRunSelectionFlags(t *testing.T) {
	app := newMock(t)
	cmd, out := newCommand()

	res, err := cmdutil.Run(cmd, app, cmdutil.Spec{
		StopAfter: rollcall.StageDeduplicate,
		Selection: &cmdutil.SelectionFlags{Statuses: []string{"completed"}, NoPrompt: true},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Completed"}, res.Selection.Statuses)
	require.Len(t, res.Members, 1)
	assert.Equal(t, "g1", res.Members[0].ID)
	assert.Contains(t, out.String(), "Status: [Completed]")
	assert.NotContains(t, out.String(), report.HeadingContacts)
}

func TestRunInvalidSelectionFlag(t *testing.T) {
	app := newMock(t)
	cmd, _ := newCommand()

	_, err := cmdutil.Run(cmd, app, cmdutil.Spec{
		StopAfter: rollcall.StageDeduplicate,
		Selection: &cmdutil.SelectionFlags{Cycles: []string{"FY99"}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestRunUsesPrompter(t *testing.T) {
	app := newMock(t)
	p := &scriptedPrompter{answers: [][]string{{"In Progress"}, nil}}
	app.PrompterFunc = func(io.Writer) rollcall.Prompter { return p }

	cmd, _ := newCommand()
	res, err := cmdutil.Run(cmd, app, cmdutil.Spec{
		StopAfter: rollcall.StageDeduplicate,
		Selection: &cmdutil.SelectionFlags{},
	})
	require.NoError(t, err)
	require.Len(t, res.Members, 1)
	assert.Equal(t, "g2", res.Members[0].ID)
}

func TestRunNoPromptIgnoresPrompter(t *testing.T) {
	app := newMock(t)
	called := false
	app.PrompterFunc = func(io.Writer) rollcall.Prompter {
		called = true
		return &scriptedPrompter{}
	}

	cmd, _ := newCommand()
	_, err := cmdutil.Run(cmd, app, cmdutil.Spec{
		StopAfter: rollcall.StageDeduplicate,
		Selection: &cmdutil.SelectionFlags{NoPrompt: true},
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestRunDispatcherErrorStopsBeforeRun(t *testing.T) {
	app := newMock(t)
	app.DispatcherFunc = func() (rollcall.Dispatcher, error) {
		return nil, errors.NewConfigError("mail", "no template file configured", nil)
	}

	cmd, out := newCommand()
	res, err := cmdutil.Run(cmd, app, cmdutil.Spec{StopAfter: rollcall.StageHandoff, Dispatch: true})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Zero(t, out.Len())
}

func TestRunJSONDocument(t *testing.T) {
	app := newMock(t)
	app.OutputFormatFunc = func() string { return "json" }

	cmd, out := newCommand()
	_, err := cmdutil.Run(cmd, app, cmdutil.Spec{
		StopAfter: rollcall.StageReportUnresolved,
		Selection: &cmdutil.SelectionFlags{NoPrompt: true},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `["g2","g3"]`, jsonField(t, out.Bytes(), "resolution", "unresolved"))
}

func TestRunBadFormat(t *testing.T) {
	app := newMock(t)
	app.OutputFormatFunc = func() string { return "xml" }

	cmd, _ := newCommand()
	_, err := cmdutil.Run(cmd, app, cmdutil.Spec{StopAfter: rollcall.StageLoad})
	require.Error(t, err)
}

func TestRunReportsSourceLines(t *testing.T) {
	dir := t.TempDir()
	r := filepath.Join(dir, "roster.csv")
	data := "GPN,Name,Status,Completion-Cycle\n" +
		"G1,Ann,Completed,FY26-Q1(July-Sep)\n" +
		",,,\n" +
		"\n" +
		"G3,,Completed,FY26-Q1(July-Sep)\n"
	require.NoError(t, os.WriteFile(r, []byte(data), 0o600))

	app := &application.Mock{
		PipelineOptionsFunc: func() ([]rollcall.Option, error) {
			return []rollcall.Option{
				rollcall.WithLoader(sheets.NewLoader()),
				rollcall.WithRoster(rollcall.Source{Path: r}),
			}, nil
		},
		OutputFormatFunc: func() string { return "json" },
	}

	cmd, out := newCommand()
	_, err := cmdutil.Run(cmd, app, cmdutil.Spec{StopAfter: rollcall.StageReportExceptions})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"row":5,"gpn":"G3","reasons":["Blank Name"]}]`,
		jsonField(t, out.Bytes(), "exceptions"))
}
