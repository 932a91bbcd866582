package schema

import (
	"fmt"
	"strings"

	"github.com/agentstation/rollcall/pkg/errors"
	"github.com/agentstation/rollcall/pkg/normalize"
)

// Domain is a closed, ordered set of allowed values for a field. Membership
// is tested on normalize.Text keys, so it ignores case and whitespace noise.
type Domain struct {
	Label  string   `yaml:"label" json:"label"`
	Values []string `yaml:"values" json:"values"`

	keys map[string]string // normalized key -> canonical value
}

// NewDomain creates a domain from its display label and ordered values.
func NewDomain(label string, values ...string) Domain {
	d := Domain{Label: label, Values: append([]string(nil), values...)}
	d.keys = d.buildKeys()
	return d
}

func (d Domain) buildKeys() map[string]string {
	keys := make(map[string]string, len(d.Values))
	for _, v := range d.Values {
		if k := normalize.Text(v); k != "" {
			if _, dup := keys[k]; !dup {
				keys[k] = v
			}
		}
	}
	return keys
}

// Contains reports whether the normalized key belongs to the domain.
func (d Domain) Contains(key string) bool {
	_, ok := d.canonical(key)
	return ok
}

func (d Domain) canonical(key string) (string, bool) {
	if d.keys != nil {
		v, ok := d.keys[key]
		return v, ok
	}
	for _, v := range d.Values {
		if normalize.Text(v) == key {
			return v, true
		}
	}
	return "", false
}

// Options returns a copy of the values in their configured order.
func (d Domain) Options() []string {
	return append([]string(nil), d.Values...)
}

// Len returns the number of values.
func (d Domain) Len() int {
	return len(d.Values)
}

// Match maps loosely typed values (any case or spacing) to their canonical
// spelling, preserving input order and dropping duplicates. Unknown values
// are rejected with a ValidationError listing the allowed ones.
func (d Domain) Match(values []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool, len(values))
	for _, raw := range values {
		key := normalize.Text(raw)
		if key == "" {
			continue
		}
		v, ok := d.canonical(key)
		if !ok {
			return nil, errors.NewValidationError(d.Label, raw,
				fmt.Sprintf("%q is not one of [%s]", raw, strings.Join(d.Values, ", ")))
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}
