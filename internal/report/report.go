// Package report prints the findings of a run for people (table or text)
// or as a single JSON or YAML document for tools.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/internal/cmd/alerts"
	"github.com/agentstation/rollcall/internal/cmd/output"
	"github.com/agentstation/rollcall/internal/cmd/table"
	"github.com/agentstation/rollcall/pkg/constants"
	"github.com/agentstation/rollcall/pkg/contacts"
	"github.com/agentstation/rollcall/pkg/reconcile"
)

// Section headings and fixed messages.
const (
	HeadingExceptions = "===== Exceptional-Cases ====="
	HeadingMembers    = "===== Filtered Output (unique by GPN) ====="
	HeadingContacts   = "===== GPN to Email ====="
	HeadingMissing    = "-- Missing emails for these GPNs (not found or blank in master) --"

	MsgClean       = "All good, there is no issue with data."
	MsgCleanupHint = "(Consider cleaning these before filtering.)"
	MsgNoMatches   = "No rows matched your selections."
	MsgNoEmails    = "No valid emails to send."
	MsgNoFilter    = "(no filter)"
)

// Console is a rollcall.Reporter writing to an io.Writer.
type Console struct {
	out     io.Writer
	format  output.Format
	maxRows int
	alerts  alerts.Writer

	doc *Document
}

var _ rollcall.Reporter = (*Console)(nil)

// Option configures a Console.
type Option func(*Console)

// WithMaxRows bounds the number of exception rows printed. Zero or less
// means constants.MaxExceptionRows.
func WithMaxRows(n int) Option {
	return func(c *Console) {
		if n > 0 {
			c.maxRows = n
		}
	}
}

// WithNoColor disables colored status lines.
func WithNoColor(noColor bool) Option {
	return func(c *Console) {
		c.alerts = alerts.NewFormatWriter(c.out, c.format, noColor)
	}
}

// New creates a Console for format.
func New(out io.Writer, format output.Format, opts ...Option) *Console {
	if format == "" {
		format = output.FormatTable
	}
	c := &Console{
		out:     out,
		format:  format,
		maxRows: constants.MaxExceptionRows,
	}
	c.alerts = alerts.NewFormatWriter(out, format, true)
	for _, opt := range opts {
		opt(c)
	}
	if format.Structured() {
		c.doc = &Document{}
	}
	return c
}

// Document is the structured form of a report.
type Document struct {
	Exceptions []ExceptionView      `json:"exceptions" yaml:"exceptions"`
	Truncated  int                  `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Selection  *reconcile.Selection `json:"selection,omitempty" yaml:"selection,omitempty"`
	Members    []reconcile.Member   `json:"members,omitempty" yaml:"members,omitempty"`
	Resolution *contacts.Resolution `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Delivery   *rollcall.Delivery   `json:"delivery,omitempty" yaml:"delivery,omitempty"`
	Notes      []string             `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ExceptionView is one flagged row as reported.
type ExceptionView struct {
	Row     int      `json:"row" yaml:"row"`
	GPN     string   `json:"gpn" yaml:"gpn"`
	Reasons []string `json:"reasons" yaml:"reasons"`
}

// Exceptions prints at most maxRows flagged rows.
func (c *Console) Exceptions(exceptions []reconcile.Exception) error {
	shown := exceptions
	if len(shown) > c.maxRows {
		shown = shown[:c.maxRows]
	}
	hidden := len(exceptions) - len(shown)

	if c.doc != nil {
		c.doc.Exceptions = make([]ExceptionView, 0, len(shown))
		for _, e := range shown {
			c.doc.Exceptions = append(c.doc.Exceptions, ExceptionView{
				Row:     e.Line,
				GPN:     e.ID,
				Reasons: e.Reasons,
			})
		}
		c.doc.Truncated = hidden
		return nil
	}

	if len(exceptions) == 0 {
		return c.alerts.WriteAlert(alerts.NewSuccess(MsgClean))
	}

	c.heading(HeadingExceptions)
	data := table.ExceptionsToTableData(shown)
	if c.format == output.FormatText {
		// Text keeps the two column GPN<TAB>reason layout.
		for i := range data.Rows {
			data.Rows[i] = data.Rows[i][1:]
		}
	}
	if err := c.emit(data); err != nil {
		return err
	}
	if hidden > 0 {
		c.printf("... and %d more\n", hidden)
	}
	c.printf("\n")
	return c.alerts.WriteAlert(alerts.NewWarning(MsgCleanupHint).
		WithDetails(fmt.Sprintf("%d rows flagged", len(exceptions))))
}

// Selections echoes the chosen filter values.
func (c *Console) Selections(sel reconcile.Selection) error {
	if c.doc != nil {
		c.doc.Selection = &sel
		return nil
	}
	c.printf("\nSelections:\n")
	c.printf("  Status: %s\n", listOrNoFilter(sel.Statuses))
	c.printf("  Completion-Cycle: %s\n", listOrNoFilter(sel.Cycles))
	return nil
}

// Members prints the deduplicated members.
func (c *Console) Members(members []reconcile.Member) error {
	if c.doc != nil {
		c.doc.Members = members
		if len(members) == 0 {
			c.doc.Notes = append(c.doc.Notes, MsgNoMatches)
		}
		return nil
	}

	c.heading(HeadingMembers)
	if len(members) == 0 {
		return c.alerts.WriteAlert(alerts.NewInfo(MsgNoMatches))
	}
	c.printf("Unique GPNs: %d\n\n", len(members))
	return c.emit(table.MembersToTableData(members))
}

// Resolution prints resolved contacts followed by unresolved identifiers.
func (c *Console) Resolution(res contacts.Resolution) error {
	if c.doc != nil {
		c.doc.Resolution = &res
		return nil
	}

	c.heading(HeadingContacts)
	if len(res.Resolved) > 0 {
		if err := c.emit(table.ContactsToTableData(res.Resolved)); err != nil {
			return err
		}
	}
	if len(res.Unresolved) == 0 {
		return nil
	}
	c.printf("\n%s\n", HeadingMissing)
	for _, id := range res.Unresolved {
		c.printf("%s\n", table.DisplayID(id))
	}
	return nil
}

// Delivery prints the outcome of the handoff; nil means nothing was sent.
func (c *Console) Delivery(d *rollcall.Delivery) error {
	if c.doc != nil {
		c.doc.Delivery = d
		if d == nil {
			c.doc.Notes = append(c.doc.Notes, MsgNoEmails)
		}
		return nil
	}

	c.printf("\n")
	switch {
	case d == nil:
		return c.alerts.WriteAlert(alerts.NewWarning(MsgNoEmails))
	case d.Sent:
		return c.alerts.WriteAlert(alerts.NewSuccess(
			fmt.Sprintf("Email sent to all %d recipients!", len(d.Recipients))))
	default:
		return c.alerts.WriteAlert(alerts.NewSuccess(
			fmt.Sprintf("Saved email for %d recipients for review.", len(d.Recipients))).
			WithDetails(d.DraftPath, "Open it, check it, then click Send."))
	}
}

// Flush writes the collected document for JSON and YAML formats. Table and
// text output is written as it arrives, so Flush does nothing for them.
func (c *Console) Flush() error {
	if c.doc == nil {
		return nil
	}
	return output.NewFormatter(c.format).Format(c.out, c.doc)
}

func (c *Console) emit(data table.Data) error {
	return output.NewFormatter(c.format).Format(c.out, data)
}

func (c *Console) heading(title string) {
	c.printf("\n%s\n\n", title)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func listOrNoFilter(values []string) string {
	if len(values) == 0 {
		return MsgNoFilter
	}
	return "[" + strings.Join(values, ", ") + "]"
}
