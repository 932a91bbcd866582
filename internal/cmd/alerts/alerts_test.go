package alerts

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rollcall/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	assert.Equal(t, "✓ done", NewSuccess("done").String())
	assert.Equal(t, "✗ Error: boom", NewError("Error").WithError(errors.New("boom")).String())
	assert.Equal(t, "! careful", NewWarning("careful").String())
	assert.Equal(t, "i note", NewInfo("note").String())
}

func TestFormatWriterText(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.FormatText, false)

	require.NoError(t, w.WriteAlert(NewWarning("check rows").WithDetails("3 rows flagged")))
	assert.Equal(t, "! check rows\n   3 rows flagged\n", buf.String())
}

func TestFormatWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.FormatJSON, true)

	require.NoError(t, w.WriteAlert(NewError("send failed").WithError(errors.New("refused"))))
	assert.JSONEq(t, `{"level":"error","message":"send failed","error":"refused"}`, buf.String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
}
