package reconcile

import (
	"github.com/agentstation/rollcall/pkg/normalize"
	"github.com/agentstation/rollcall/pkg/roster"
)

// Selection is the caller's choice of statuses and cycles. An empty list
// places no constraint on its field; it does not mean "match nothing".
type Selection struct {
	Statuses []string `json:"statuses" yaml:"statuses"`
	Cycles   []string `json:"cycles" yaml:"cycles"`
}

// IsZero reports whether neither field is constrained.
func (s Selection) IsZero() bool {
	return len(s.Statuses) == 0 && len(s.Cycles) == 0
}

// Filter returns the rows of t whose status is among sel.Statuses and whose
// cycle is among sel.Cycles, comparing normalized forms. Surviving rows keep
// their input order.
func Filter(t *roster.Table, b roster.Binding, sel Selection) *roster.Table {
	statuses := selectionSet(sel.Statuses)
	cycles := selectionSet(sel.Cycles)

	statusCol := b.Column(roster.FieldStatus)
	cycleCol := b.Column(roster.FieldCycle)

	rows := make([]roster.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if !allows(statuses, row.Get(statusCol)) || !allows(cycles, row.Get(cycleCol)) {
			continue
		}
		rows = append(rows, row)
	}
	return t.Subset(rows)
}

// selectionSet returns nil for an empty selection, meaning pass-through.
func selectionSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	return normalize.Set(values)
}

func allows(set map[string]struct{}, raw string) bool {
	if set == nil {
		return true
	}
	_, ok := set[normalize.Text(raw)]
	return ok
}
