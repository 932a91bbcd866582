package reconcile

import (
	"strings"

	"github.com/agentstation/rollcall/pkg/normalize"
	"github.com/agentstation/rollcall/pkg/roster"
)

// Rule names reported for a row, listed in evaluation order.
const (
	ReasonBlankStatus   = "Blank Status"
	ReasonInvalidStatus = "Invalid Status"
	ReasonBlankCycle    = "Blank Completion-Cycle"
	ReasonInvalidCycle  = "Invalid Completion-Cycle"
	ReasonBlankID       = "Blank GPN"
	ReasonBlankName     = "Blank Name"
)

// ReasonSeparator joins the reasons of one row.
const ReasonSeparator = ", "

// AllowList is a closed value domain tested on normalize.Text keys.
type AllowList interface {
	Contains(key string) bool
}

// Exception is a roster row that violates at least one rule.
type Exception struct {
	// Index is the zero-based position of the row in the classified table.
	Index int
	// Line is the 1-based line of the row in its source file.
	Line int
	// ID is the identifier as written in the source, cleaned of noise.
	ID      string
	Row     roster.Row
	Reasons []string
}

// Reason returns the reasons joined for display.
func (e Exception) Reason() string {
	return strings.Join(e.Reasons, ReasonSeparator)
}

// Classifier flags rows whose status or cycle fall outside the allow-lists
// or whose identifier, name, status or cycle is blank.
type Classifier struct {
	status AllowList
	cycle  AllowList
}

// NewClassifier creates a classifier for the given allow-lists.
func NewClassifier(status, cycle AllowList) *Classifier {
	return &Classifier{status: status, cycle: cycle}
}

// Reasons returns, for every row of t in order, the joined reasons of that
// row or "" when the row is clean.
func (c *Classifier) Reasons(t *roster.Table, b roster.Binding) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = strings.Join(c.evaluate(row, b), ReasonSeparator)
	}
	return out
}

// Classify returns the rows of t with at least one violated rule, in table
// order. Clean rows are omitted and t is left untouched.
func (c *Classifier) Classify(t *roster.Table, b roster.Binding) []Exception {
	idCol := b.Column(roster.FieldID)

	var out []Exception
	for i, row := range t.Rows {
		reasons := c.evaluate(row, b)
		if len(reasons) == 0 {
			continue
		}
		out = append(out, Exception{
			Index:   i,
			Line:    t.Line(i),
			ID:      normalize.Clean(row.Get(idCol)),
			Row:     row,
			Reasons: reasons,
		})
	}
	return out
}

// evaluate normalizes each field once and applies the six rules.
func (c *Classifier) evaluate(row roster.Row, b roster.Binding) []string {
	status := normalize.Text(row.Get(b.Column(roster.FieldStatus)))
	cycle := normalize.Text(row.Get(b.Column(roster.FieldCycle)))
	id := normalize.Text(row.Get(b.Column(roster.FieldID)))
	name := normalize.Text(row.Get(b.Column(roster.FieldName)))

	var reasons []string
	switch {
	case status == "":
		reasons = append(reasons, ReasonBlankStatus)
	case !c.status.Contains(status):
		reasons = append(reasons, ReasonInvalidStatus)
	}
	switch {
	case cycle == "":
		reasons = append(reasons, ReasonBlankCycle)
	case !c.cycle.Contains(cycle):
		reasons = append(reasons, ReasonInvalidCycle)
	}
	if id == "" {
		reasons = append(reasons, ReasonBlankID)
	}
	if name == "" {
		reasons = append(reasons, ReasonBlankName)
	}
	return reasons
}

// Summary counts exceptions per reason.
func Summary(exceptions []Exception) map[string]int {
	counts := make(map[string]int)
	for _, e := range exceptions {
		for _, r := range e.Reasons {
			counts[r]++
		}
	}
	return counts
}
