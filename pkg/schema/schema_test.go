package schema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rollcall/pkg/errors"
	"github.com/agentstation/rollcall/pkg/normalize"
	"github.com/agentstation/rollcall/pkg/roster"
	"github.com/agentstation/rollcall/pkg/schema"
)

func TestDefault(t *testing.T) {
	s, err := schema.Default()
	require.NoError(t, err)

	assert.Equal(t, "Status", s.Status.Label)
	assert.Equal(t, []string{"In Progress", "Completed", "Not Started", "Submitted", "Rejected"}, s.Status.Options())
	assert.Equal(t, "Completion-Cycle", s.Cycle.Label)
	assert.Len(t, s.Cycle.Values, 4)
	assert.True(t, s.Cycle.Contains(normalize.Text("fy26-q1(july-sep)")))

	spec, ok := s.Roster.Spec(roster.FieldID)
	require.True(t, ok)
	assert.Equal(t, "GPN", spec.Primary)
	assert.Equal(t, []string{"GPNID", "GPN Id", "GPN_Id", "GPN ID"}, spec.Alternates)

	assert.Equal(t, "Emerging Tech Team Members", s.Contacts.Sheet)
	spec, ok = s.Contacts.Spec(roster.FieldContact)
	require.True(t, ok)
	assert.Equal(t, "Email ID", spec.Primary)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
status:
  values: [Open, Closed]
contacts:
  sheet: People
`), 0o644))

	s, err := schema.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Open", "Closed"}, s.Status.Values)
	assert.Equal(t, "Status", s.Status.Label, "label kept from default")
	assert.True(t, s.Status.Contains("closed"))
	assert.False(t, s.Status.Contains("completed"))
	assert.Len(t, s.Cycle.Values, 4, "cycle kept from default")
	assert.Equal(t, "People", s.Contacts.Sheet)
	assert.NotEmpty(t, s.Contacts.Fields)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := schema.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("status:\n  label: \"unterminated\n"), 0o644))
		_, err := schema.Load(path)
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("empty allow-list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cycle:\n  values: []\n"), 0o644))
		_, err := schema.Load(path)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestParseRequiresBindings(t *testing.T) {
	_, err := schema.Parse([]byte(`
status: {label: Status, values: [A]}
cycle: {label: Cycle, values: [B]}
roster:
  fields:
    - {field: gpn_id, primary: GPN, required: true}
contacts:
  fields:
    - {field: gpn_id, primary: GPN, required: true}
    - {field: email, primary: Email, required: true}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no binding for field name")
	assert.Contains(t, err.Error(), "no binding for field status")
	assert.Contains(t, err.Error(), "no binding for field cycle")
}

func TestDomain(t *testing.T) {
	d := schema.NewDomain("Status", "In Progress", "Completed")

	t.Run("contains normalized keys", func(t *testing.T) {
		assert.True(t, d.Contains("in progress"))
		assert.False(t, d.Contains("In Progress"), "keys must be normalized by the caller")
		assert.False(t, d.Contains(""))
	})

	t.Run("zero value falls back to scanning", func(t *testing.T) {
		raw := schema.Domain{Label: "Status", Values: []string{"Completed"}}
		assert.True(t, raw.Contains("completed"))
	})

	t.Run("match canonicalizes", func(t *testing.T) {
		got, err := d.Match([]string{" completed", "IN  PROGRESS", "Completed", ""})
		require.NoError(t, err)
		assert.Equal(t, []string{"Completed", "In Progress"}, got)
	})

	t.Run("match rejects unknown values", func(t *testing.T) {
		_, err := d.Match([]string{"Bogus"})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "In Progress, Completed")
	})

	t.Run("options are a copy", func(t *testing.T) {
		opts := d.Options()
		opts[0] = "changed"
		assert.Equal(t, "In Progress", d.Values[0])
	})
}
