// Package embedded holds files compiled into the rollcall binary.
package embedded

import (
	_ "embed"
)

// Schema is the default reconciliation schema (allow-lists and column
// bindings) in YAML form.
//
//go:embed schema.yaml
var Schema []byte
