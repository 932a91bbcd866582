package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/rollcall/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("file", "data/roster.xlsx")
		assert.Equal(t, "file data/roster.xlsx not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := errors.Join(errors.New("failed"), pkgerrors.NewNotFoundError("sheet", "Sheet1"))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestColumnNotFoundError(t *testing.T) {
	err := pkgerrors.NewColumnNotFoundError("gpn_id",
		[]string{"GPN", "GPN ID"},
		[]string{"Name", "Status"})

	assert.Equal(t,
		`column for gpn_id not found: tried ["GPN", "GPN ID"], available ["Name", "Status"]`,
		err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))

	var target *pkgerrors.ColumnNotFoundError
	require.True(t, errors.As(errors.Join(err), &target))
	assert.Equal(t, []string{"GPN", "GPN ID"}, target.Candidates)
}

func TestColumnNotFoundErrorCopiesInputs(t *testing.T) {
	candidates := []string{"GPN"}
	err := pkgerrors.NewColumnNotFoundError("gpn_id", candidates, nil)
	candidates[0] = "changed"
	assert.Equal(t, "GPN", err.Candidates[0])
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("status", "Bogus", "not an allowed value")
		assert.Equal(t, "validation failed for field status: not an allowed value", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty schema"}
		assert.Equal(t, "validation failed: empty schema", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("no such file")
	err := pkgerrors.NewConfigError("mail", "template not readable", base)
	assert.Equal(t, "configuration error in mail: template not readable", err.Error())
	assert.ErrorIs(t, err, base)

	err = pkgerrors.NewConfigError("", "missing roster path", nil)
	assert.Equal(t, "configuration error: missing roster path", err.Error())
}

func TestLoadError(t *testing.T) {
	base := errors.New("zip: not a valid zip file")

	err := pkgerrors.NewLoadError("data/roster.xlsx", "Sheet1", base)
	assert.Contains(t, err.Error(), `sheet "Sheet1"`)
	assert.Contains(t, err.Error(), "zip: not a valid zip file")
	assert.True(t, pkgerrors.IsLoadError(err))
	assert.ErrorIs(t, err, base)

	err = pkgerrors.NewLoadError("data/roster.csv", "", base)
	assert.Equal(t, "failed to load data/roster.csv: zip: not a valid zip file", err.Error())
}

func TestDispatchError(t *testing.T) {
	base := errors.New("connection refused")

	err := &pkgerrors.DispatchError{Recipients: 3, DraftPath: "drafts/a.eml", Err: base}
	assert.Contains(t, err.Error(), "3 recipients")
	assert.Contains(t, err.Error(), "drafts/a.eml")
	assert.True(t, pkgerrors.IsDispatchError(err))
	assert.ErrorIs(t, err, base)

	err = &pkgerrors.DispatchError{Recipients: 1, Err: base}
	assert.NotContains(t, err.Error(), "draft")
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.NewIOError("read", "/tmp/x.xlsx", base)
	assert.Equal(t, "IO error during read of /tmp/x.xlsx: permission denied", err.Error())
	assert.ErrorIs(t, err, base)

	err = &pkgerrors.IOError{Operation: "write", Message: "disk full"}
	assert.Equal(t, "IO error during write: disk full", err.Error())
}

func TestParseError(t *testing.T) {
	err := pkgerrors.NewParseError("yaml", "schema.yaml", "bad indent", nil)
	assert.Equal(t, "parse error in yaml file schema.yaml: bad indent", err.Error())

	err = pkgerrors.NewParseError("template", "", "unexpected EOF", nil)
	assert.Equal(t, "template parse error: unexpected EOF", err.Error())
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("yaml", "x", nil))
	assert.NoError(t, pkgerrors.WrapLoad("x", "", nil))

	base := errors.New("boom")

	var ioErr *pkgerrors.IOError
	require.ErrorAs(t, pkgerrors.WrapIO("open", "x", base), &ioErr)
	assert.Equal(t, "open", ioErr.Operation)

	var parseErr *pkgerrors.ParseError
	require.ErrorAs(t, pkgerrors.WrapParse("yaml", "x", base), &parseErr)
	assert.Equal(t, "boom", parseErr.Message)

	assert.True(t, pkgerrors.IsLoadError(pkgerrors.WrapLoad("x", "", base)))
}
