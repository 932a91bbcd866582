package roster

import (
	"github.com/agentstation/rollcall/pkg/errors"
	"github.com/agentstation/rollcall/pkg/normalize"
)

// ResolveColumn returns the first column of t whose normalized label matches
// primary or, failing that, one of the alternates in order. Labels are
// compared with normalize.Header so whitespace, case, '-' and '_' drift is
// tolerated.
func ResolveColumn(t *Table, field Field, primary string, alternates ...string) (string, error) {
	index := headerIndex(t.Columns)

	candidates := append([]string{primary}, alternates...)
	for _, cand := range candidates {
		if col, ok := index[normalize.Header(cand)]; ok {
			return col, nil
		}
	}
	return "", errors.NewColumnNotFoundError(string(field), candidates, t.Columns)
}

// Bind resolves every spec against t. Required fields that cannot be found
// are collected and returned together; optional ones are left unbound.
func Bind(t *Table, specs []FieldSpec) (Binding, error) {
	columns := make(map[Field]string, len(specs))
	var missing []error
	for _, spec := range specs {
		col, err := ResolveColumn(t, spec.Field, spec.Primary, spec.Alternates...)
		if err != nil {
			if spec.Required {
				missing = append(missing, err)
			}
			continue
		}
		columns[spec.Field] = col
	}
	if len(missing) > 0 {
		return Binding{}, errors.Join(missing...)
	}
	return Binding{table: t.Name, columns: columns}, nil
}

// headerIndex maps normalized labels to the original label. When two
// columns normalize identically the leftmost wins.
func headerIndex(columns []string) map[string]string {
	index := make(map[string]string, len(columns))
	for _, c := range columns {
		k := normalize.Header(c)
		if _, seen := index[k]; !seen {
			index[k] = c
		}
	}
	return index
}
