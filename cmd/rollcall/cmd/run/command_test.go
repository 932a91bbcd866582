package run

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/internal/cmd/application"
	"github.com/agentstation/rollcall/pkg/errors"
	"github.com/agentstation/rollcall/pkg/roster"
)

type pathLoader map[string]*roster.Table

func (l pathLoader) Load(_ context.Context, src rollcall.Source) (*roster.Table, error) {
	return l[src.Path], nil
}

type recordingDispatcher struct {
	handoffs []rollcall.Handoff
	err      error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, h rollcall.Handoff) (*rollcall.Delivery, error) {
	d.handoffs = append(d.handoffs, h)
	if d.err != nil {
		return nil, d.err
	}
	return &rollcall.Delivery{Mode: "smtp", Sent: true, Recipients: h.Recipients}, nil
}

func newMock(d *recordingDispatcher) *application.Mock {
	loader := pathLoader{
		"roster.csv": roster.NewTable("roster", []string{"GPN", "Name", "Status", "Completion-Cycle"}, [][]string{
			{"G1", "Ann", "Completed", "FY26-Q1(July-Sep)"},
			{"G2", "Bob", "Completed", "FY26-Q2(Oct-Dec)"},
			{"G3", "Cy", "Submitted", "FY26-Q2(Oct-Dec)"},
		}),
		"team.csv": roster.NewTable("team", []string{"GPN ID", "Email"}, [][]string{
			{"g1", "ann@example.com"},
			{"G2", " ANN@example.com "},
			{"G3", "cy@example.com"},
		}),
	}
	return &application.Mock{
		PipelineOptionsFunc: func() ([]rollcall.Option, error) {
			return []rollcall.Option{
				rollcall.WithLoader(loader),
				rollcall.WithRoster(rollcall.Source{Path: "roster.csv"}),
				rollcall.WithContacts(rollcall.Source{Path: "team.csv"}),
			}, nil
		},
		DispatcherFunc: func() (rollcall.Dispatcher, error) { return d, nil },
	}
}

func TestRunDispatchesCleanRecipients(t *testing.T) {
	d := &recordingDispatcher{}
	var out bytes.Buffer
	cmd := NewCommand(newMock(d))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--status", "Completed", "--no-prompt"})

	require.NoError(t, cmd.Execute())
	require.Len(t, d.handoffs, 1)
	assert.Equal(t, []string{"ann@example.com"}, d.handoffs[0].Recipients)
	assert.Equal(t, []string{"Completed"}, d.handoffs[0].Selection.Statuses)
	assert.Contains(t, out.String(), "Email sent to all 1 recipients!")
}

func TestRunPromptsWhenAllowed(t *testing.T) {
	d := &recordingDispatcher{}
	app := newMock(d)
	var promptOut io.Writer
	app.PrompterFunc = func(out io.Writer) rollcall.Prompter {
		promptOut = out
		return cyclePicker{}
	}

	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Same(t, &out, promptOut)
	require.Len(t, d.handoffs, 1)
	assert.ElementsMatch(t, []string{"ANN@example.com", "cy@example.com"}, d.handoffs[0].Recipients)
}

func TestRunDispatchFailure(t *testing.T) {
	d := &recordingDispatcher{err: &errors.DispatchError{Recipients: 1, DraftPath: "drafts/a.eml", Err: errors.New("refused")}}
	cmd := NewCommand(newMock(d))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--no-prompt"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsDispatchError(err))
}

// cyclePicker keeps every status and the second quarter.
type cyclePicker struct{}

func (cyclePicker) Select(_ context.Context, title string, options []string) ([]string, error) {
	if title == "Select one or more Completion-Cycle options:" {
		return []string{"FY26-Q2(Oct-Dec)"}, nil
	}
	return nil, nil
}
