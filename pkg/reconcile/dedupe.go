package reconcile

import (
	"sort"

	"github.com/agentstation/rollcall/pkg/normalize"
	"github.com/agentstation/rollcall/pkg/roster"
)

// Member is one deduplicated roster entry, in normalized form.
type Member struct {
	ID   string `json:"gpn" yaml:"gpn"`
	Name string `json:"name" yaml:"name"`
}

// Dedupe collapses t to one row per normalized identifier. The result holds
// only the identifier and name columns, normalized, sorted ascending by
// (identifier, name); for a repeated identifier the smallest name is kept.
// Rows with a blank identifier are dropped.
func Dedupe(t *roster.Table, b roster.Binding) *roster.Table {
	idCol := b.Column(roster.FieldID)
	nameCol := b.Column(roster.FieldName)

	members := make([]Member, 0, len(t.Rows))
	for _, row := range t.Rows {
		id := normalize.Text(row.Get(idCol))
		if id == "" {
			continue
		}
		members = append(members, Member{ID: id, Name: normalize.Text(row.Get(nameCol))})
	}

	sort.SliceStable(members, func(i, j int) bool {
		if members[i].ID != members[j].ID {
			return members[i].ID < members[j].ID
		}
		return members[i].Name < members[j].Name
	})

	out := &roster.Table{Name: t.Name, Columns: []string{idCol, nameCol}}
	for i, m := range members {
		if i > 0 && members[i-1].ID == m.ID {
			continue
		}
		out.Rows = append(out.Rows, roster.Row{idCol: m.ID, nameCol: m.Name})
	}
	return out
}

// Members reads a deduplicated table back as members.
func Members(t *roster.Table, b roster.Binding) []Member {
	idCol := b.Column(roster.FieldID)
	nameCol := b.Column(roster.FieldName)

	out := make([]Member, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = Member{ID: row.Get(idCol), Name: row.Get(nameCol)}
	}
	return out
}
