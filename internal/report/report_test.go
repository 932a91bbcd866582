package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/internal/cmd/output"
	"github.com/agentstation/rollcall/internal/report"
	"github.com/agentstation/rollcall/pkg/contacts"
	"github.com/agentstation/rollcall/pkg/reconcile"
)

func exceptions(n int) []reconcile.Exception {
	out := make([]reconcile.Exception, n)
	for i := range out {
		out[i] = reconcile.Exception{
			Index:   i,
			Line:    i + 2,
			ID:      "G" + strings.Repeat("1", i+1),
			Reasons: []string{"Invalid Status", "Blank Name"},
		}
	}
	return out
}

func TestExceptionsText(t *testing.T) {
	var buf bytes.Buffer
	c := report.New(&buf, output.FormatText, report.WithMaxRows(2))

	require.NoError(t, c.Exceptions(exceptions(3)))
	text := buf.String()

	assert.Contains(t, text, report.HeadingExceptions)
	assert.Contains(t, text, "G1\tInvalid Status, Blank Name\n")
	assert.Contains(t, text, "G11\tInvalid Status, Blank Name\n")
	assert.NotContains(t, text, "G111\t")
	assert.Contains(t, text, "... and 1 more\n")
	assert.Contains(t, text, report.MsgCleanupHint)
	assert.Contains(t, text, "3 rows flagged")
}

func TestExceptionsClean(t *testing.T) {
	var buf bytes.Buffer
	c := report.New(&buf, output.FormatText)

	require.NoError(t, c.Exceptions(nil))
	assert.Equal(t, "✓ "+report.MsgClean+"\n", buf.String())
}

func TestExceptionsTable(t *testing.T) {
	var buf bytes.Buffer
	c := report.New(&buf, output.FormatTable)

	require.NoError(t, c.Exceptions(exceptions(1)))
	text := strings.ToUpper(buf.String())
	assert.Contains(t, text, "REASON")
	assert.Contains(t, text, "G1")
	assert.Contains(t, text, "INVALID STATUS, BLANK NAME")
}

func TestSelections(t *testing.T) {
	var buf bytes.Buffer
	c := report.New(&buf, output.FormatText)

	require.NoError(t, c.Selections(reconcile.Selection{Statuses: []string{"Completed", "Submitted"}}))
	assert.Contains(t, buf.String(), "  Status: [Completed, Submitted]\n")
	assert.Contains(t, buf.String(), "  Completion-Cycle: (no filter)\n")
}

func TestMembers(t *testing.T) {
	var buf bytes.Buffer
	c := report.New(&buf, output.FormatText)

	require.NoError(t, c.Members([]reconcile.Member{{ID: "g1", Name: "ann lee"}, {ID: "g2", Name: "bob"}}))
	text := buf.String()
	assert.Contains(t, text, report.HeadingMembers)
	assert.Contains(t, text, "Unique GPNs: 2\n")
	assert.Contains(t, text, "G1\tAnn Lee\n")
	assert.Contains(t, text, "G2\tBob\n")
}

func TestMembersEmpty(t *testing.T) {
	var buf bytes.Buffer
	c := report.New(&buf, output.FormatText)

	require.NoError(t, c.Members(nil))
	assert.Contains(t, buf.String(), report.MsgNoMatches)
	assert.NotContains(t, buf.String(), "Unique GPNs")
}

func TestResolution(t *testing.T) {
	var buf bytes.Buffer
	c := report.New(&buf, output.FormatText)

	require.NoError(t, c.Resolution(contacts.Resolution{
		Resolved:   []contacts.Contact{{ID: "g1", Name: "ann", Address: "Ann@Example.com"}},
		Unresolved: []string{"g4", "g5"},
	}))
	text := buf.String()
	assert.Contains(t, text, "G1\tAnn\tAnn@Example.com\n")
	assert.Contains(t, text, report.HeadingMissing+"\nG4\nG5\n")
}

func TestResolutionAllResolved(t *testing.T) {
	var buf bytes.Buffer
	c := report.New(&buf, output.FormatText)

	require.NoError(t, c.Resolution(contacts.Resolution{
		Resolved: []contacts.Contact{{ID: "g1", Name: "ann", Address: "a@example.com"}},
	}))
	assert.NotContains(t, buf.String(), report.HeadingMissing)
}

func TestDelivery(t *testing.T) {
	tests := []struct {
		name string
		d    *rollcall.Delivery
		want []string
	}{
		{name: "nothing to send", want: []string{report.MsgNoEmails}},
		{
			name: "sent",
			d:    &rollcall.Delivery{Mode: "smtp", Sent: true, Recipients: []string{"a", "b"}},
			want: []string{"Email sent to all 2 recipients!"},
		},
		{
			name: "draft",
			d:    &rollcall.Delivery{Mode: "draft", Recipients: []string{"a"}, DraftPath: "drafts/x.eml"},
			want: []string{"Saved email for 1 recipients for review.", "   drafts/x.eml\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, report.New(&buf, output.FormatText).Delivery(tt.d))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	c := report.New(&buf, output.FormatJSON, report.WithMaxRows(1))

	require.NoError(t, c.Exceptions(exceptions(2)))
	require.NoError(t, c.Selections(reconcile.Selection{Cycles: []string{"FY26-Q1(July-Sep)"}}))
	require.NoError(t, c.Members([]reconcile.Member{{ID: "g1", Name: "ann"}}))
	require.NoError(t, c.Resolution(contacts.Resolution{Unresolved: []string{"g1"}}))
	require.NoError(t, c.Delivery(nil))
	assert.Zero(t, buf.Len(), "structured output waits for Flush")

	require.NoError(t, c.Flush())

	var doc report.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Exceptions, 1)
	assert.Equal(t, 2, doc.Exceptions[0].Row)
	assert.Equal(t, 1, doc.Truncated)
	assert.Equal(t, []string{"FY26-Q1(July-Sep)"}, doc.Selection.Cycles)
	assert.Equal(t, []string{"g1"}, doc.Resolution.Unresolved)
	assert.Equal(t, []string{report.MsgNoEmails}, doc.Notes)
}

func TestStructuredYAML(t *testing.T) {
	var buf bytes.Buffer
	c := report.New(&buf, output.FormatYAML)

	require.NoError(t, c.Members([]reconcile.Member{{ID: "g1", Name: "ann"}}))
	require.NoError(t, c.Flush())

	var doc report.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, []reconcile.Member{{ID: "g1", Name: "ann"}}, doc.Members)
}

func TestFlushTextIsNoop(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.New(&buf, output.FormatText).Flush())
	assert.Zero(t, buf.Len())
}
