// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status lines in reports and alerts.
const (
	// Success marks a completed step or a clean result.
	Success = "✓"

	// Error marks a failure.
	Error = "✗"

	// Warning marks findings that need attention but do not stop a run.
	Warning = "!"

	// Info marks neutral information.
	Info = "i"
)
