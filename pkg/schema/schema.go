// Package schema holds the reconciliation rules that vary per data source:
// the status and cycle allow-lists and the column bindings of the roster and
// contact tables. A default schema is compiled into the binary and can be
// overridden, key by key, from a YAML file.
package schema

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/rollcall/internal/embedded"
	"github.com/agentstation/rollcall/pkg/errors"
	"github.com/agentstation/rollcall/pkg/roster"
)

// TableSpec describes how to read one input table.
type TableSpec struct {
	// Sheet selects the worksheet; empty means the first sheet.
	Sheet  string             `yaml:"sheet,omitempty" json:"sheet,omitempty"`
	Fields []roster.FieldSpec `yaml:"fields" json:"fields"`
}

// Schema is the full set of rules for one run.
type Schema struct {
	Status   Domain    `yaml:"status" json:"status"`
	Cycle    Domain    `yaml:"cycle" json:"cycle"`
	Roster   TableSpec `yaml:"roster" json:"roster"`
	Contacts TableSpec `yaml:"contacts" json:"contacts"`
}

// Default returns the embedded schema.
func Default() (*Schema, error) {
	return parseOver(&Schema{}, embedded.Schema, "schema.yaml")
}

// MustDefault returns the embedded schema and panics if it does not parse.
func MustDefault() *Schema {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	return s
}

// Load reads a YAML schema file over the embedded default: keys present in
// the file replace the default ones, absent keys are kept.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	base, err := Default()
	if err != nil {
		return nil, err
	}
	return parseOver(base, data, path)
}

// Parse reads a complete schema from YAML data.
func Parse(data []byte) (*Schema, error) {
	return parseOver(&Schema{}, data, "")
}

func parseOver(base *Schema, data []byte, name string) (*Schema, error) {
	s := *base
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	s.Status = NewDomain(s.Status.Label, s.Status.Values...)
	s.Cycle = NewDomain(s.Cycle.Label, s.Cycle.Values...)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that both domains are populated and that each table binds
// the fields the pipeline needs.
func (s *Schema) Validate() error {
	var errs []error
	if s.Status.Len() == 0 {
		errs = append(errs, errors.NewValidationError("status", nil, "allow-list is empty"))
	}
	if s.Cycle.Len() == 0 {
		errs = append(errs, errors.NewValidationError("cycle", nil, "allow-list is empty"))
	}
	errs = append(errs, checkFields("roster", s.Roster.Fields,
		roster.FieldID, roster.FieldName, roster.FieldStatus, roster.FieldCycle)...)
	errs = append(errs, checkFields("contacts", s.Contacts.Fields,
		roster.FieldID, roster.FieldContact)...)
	return errors.Join(errs...)
}

func checkFields(table string, specs []roster.FieldSpec, want ...roster.Field) []error {
	var errs []error
	byField := make(map[roster.Field]roster.FieldSpec, len(specs))
	for _, spec := range specs {
		if spec.Primary == "" {
			errs = append(errs, errors.NewValidationError(table+"."+string(spec.Field), nil, "primary label is empty"))
		}
		byField[spec.Field] = spec
	}
	for _, f := range want {
		spec, ok := byField[f]
		if !ok {
			errs = append(errs, errors.NewValidationError(table, f, "no binding for field "+string(f)))
			continue
		}
		if !spec.Required {
			errs = append(errs, errors.NewValidationError(table+"."+string(f), nil, "field must be required"))
		}
	}
	return errs
}

// Spec returns the field spec for f in the given table spec.
func (t TableSpec) Spec(f roster.Field) (roster.FieldSpec, bool) {
	for _, spec := range t.Fields {
		if spec.Field == f {
			return spec, true
		}
	}
	return roster.FieldSpec{}, false
}
