package roster

import (
	"fmt"
	"sort"
)

// Field is a logical field name, independent of how a source labels it.
type Field string

// Logical fields used by the pipeline.
const (
	FieldID      Field = "gpn_id"
	FieldName    Field = "name"
	FieldStatus  Field = "status"
	FieldCycle   Field = "cycle"
	FieldContact Field = "email"
)

// FieldSpec describes how to find a logical field in a table: the primary
// label first, then each alternate in order.
type FieldSpec struct {
	Field      Field    `yaml:"field" json:"field"`
	Primary    string   `yaml:"primary" json:"primary"`
	Alternates []string `yaml:"alternates,omitempty" json:"alternates,omitempty"`
	Required   bool     `yaml:"required" json:"required"`
}

// Candidates returns the primary label followed by the alternates.
func (s FieldSpec) Candidates() []string {
	out := make([]string, 0, 1+len(s.Alternates))
	out = append(out, s.Primary)
	return append(out, s.Alternates...)
}

// Binding is the resolved mapping from logical field to concrete column
// label for one table. It is computed once and threaded through every stage.
type Binding struct {
	table   string
	columns map[Field]string
}

// NewBinding creates a binding from an explicit field → label map.
func NewBinding(table string, columns map[Field]string) Binding {
	cp := make(map[Field]string, len(columns))
	for f, c := range columns {
		cp[f] = c
	}
	return Binding{table: table, columns: cp}
}

// Table returns the name of the table the binding was resolved against.
func (b Binding) Table() string {
	return b.table
}

// Lookup returns the column bound to f.
func (b Binding) Lookup(f Field) (string, bool) {
	c, ok := b.columns[f]
	return c, ok
}

// Has reports whether f is bound.
func (b Binding) Has(f Field) bool {
	_, ok := b.columns[f]
	return ok
}

// Column returns the column bound to f. It panics when f is unbound, which
// is a programming error: required fields are checked by Bind.
func (b Binding) Column(f Field) string {
	c, ok := b.columns[f]
	if !ok {
		panic(fmt.Sprintf("roster: field %s is not bound for table %s", f, b.table))
	}
	return c
}

// Fields returns the bound fields in sorted order.
func (b Binding) Fields() []Field {
	out := make([]Field, 0, len(b.columns))
	for f := range b.columns {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
