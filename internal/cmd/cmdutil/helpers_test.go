package cmdutil_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// jsonField returns the raw JSON found by following keys through nested objects.
func jsonField(t *testing.T, data []byte, keys ...string) string {
	t.Helper()
	raw := json.RawMessage(data)
	for _, k := range keys {
		var obj map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &obj))
		v, ok := obj[k]
		require.True(t, ok, "missing key %q", k)
		raw = v
	}
	return string(raw)
}
