// Package contacts maps member identifiers to contact addresses using a
// master contacts table, and splits a member list into those that can be
// reached and those that cannot.
package contacts

import (
	"github.com/agentstation/rollcall/pkg/normalize"
	"github.com/agentstation/rollcall/pkg/reconcile"
	"github.com/agentstation/rollcall/pkg/roster"
)

// Directory is an identifier to address map. Keys are normalized
// identifiers; addresses are cleaned but keep their case. A key may map to
// "" when every row for it had a blank address.
type Directory struct {
	entries map[string]string
	order   []string
}

// Build reads the identifier and contact columns of t. Rows with a blank
// identifier are skipped. When an identifier repeats, the first non-blank
// address wins.
func Build(t *roster.Table, b roster.Binding) *Directory {
	idCol := b.Column(roster.FieldID)
	contactCol := b.Column(roster.FieldContact)

	d := &Directory{entries: make(map[string]string, len(t.Rows))}
	for _, row := range t.Rows {
		id := normalize.Text(row.Get(idCol))
		if id == "" {
			continue
		}
		addr := normalize.Clean(row.Get(contactCol))

		prev, seen := d.entries[id]
		switch {
		case !seen:
			d.entries[id] = addr
			d.order = append(d.order, id)
		case prev == "" && addr != "":
			d.entries[id] = addr
		}
	}
	return d
}

// Lookup returns the address for id, compared case-insensitively and
// ignoring surrounding noise. ok is false when the identifier is absent or
// its address is blank.
func (d *Directory) Lookup(id string) (addr string, ok bool) {
	if d == nil {
		return "", false
	}
	addr = d.entries[normalize.Text(id)]
	return addr, addr != ""
}

// Len returns the number of distinct identifiers.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// IDs returns the identifiers in first-seen order.
func (d *Directory) IDs() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.order...)
}

// Contact is a member with a known address.
type Contact struct {
	ID      string `json:"gpn" yaml:"gpn"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"email" yaml:"email"`
}

// Resolution is the outcome of resolving a member list.
type Resolution struct {
	Resolved   []Contact `json:"resolved" yaml:"resolved"`
	Unresolved []string  `json:"unresolved" yaml:"unresolved"`
}

// Addresses returns the addresses of the resolved contacts in order.
func (r Resolution) Addresses() []string {
	out := make([]string, len(r.Resolved))
	for i, c := range r.Resolved {
		out[i] = c.Address
	}
	return out
}

// Resolve splits members into those with a non-blank address and the
// identifiers of those without one. Both lists keep the member order.
func (d *Directory) Resolve(members []reconcile.Member) Resolution {
	var res Resolution
	for _, m := range members {
		if addr, ok := d.Lookup(m.ID); ok {
			res.Resolved = append(res.Resolved, Contact{ID: m.ID, Name: m.Name, Address: addr})
			continue
		}
		res.Unresolved = append(res.Unresolved, m.ID)
	}
	return res
}
