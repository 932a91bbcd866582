// Package table converts reconciliation results into rows for display.
package table

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/rollcall/pkg/contacts"
	"github.com/agentstation/rollcall/pkg/reconcile"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// DisplayID renders a normalized identifier the way rosters print it.
func DisplayID(id string) string {
	return strings.ToUpper(id)
}

// DisplayName renders a normalized name in title case.
func DisplayName(name string) string {
	return cases.Title(language.Und).String(name)
}

// ExceptionsToTableData lists flagged rows. The identifier is shown as
// written in the source.
func ExceptionsToTableData(exceptions []reconcile.Exception) Data {
	rows := make([][]string, 0, len(exceptions))
	for _, e := range exceptions {
		rows = append(rows, []string{strconv.Itoa(e.Line), e.ID, e.Reason()})
	}
	return Data{
		Headers:         []string{"Row", "GPN", "Reason"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft},
	}
}

// MembersToTableData lists deduplicated members.
func MembersToTableData(members []reconcile.Member) Data {
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{DisplayID(m.ID), DisplayName(m.Name)})
	}
	return Data{Headers: []string{"GPN", "Name"}, Rows: rows}
}

// ContactsToTableData lists resolved contacts.
func ContactsToTableData(resolved []contacts.Contact) Data {
	rows := make([][]string, 0, len(resolved))
	for _, c := range resolved {
		rows = append(rows, []string{DisplayID(c.ID), DisplayName(c.Name), c.Address})
	}
	return Data{Headers: []string{"GPN", "Name", "Email"}, Rows: rows}
}
