// Package hints provides actionable user guidance for failed commands.
package hints

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentstation/rollcall/pkg/errors"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string // Human-readable guidance message
	Command string // Optional specific command to run
}

// New creates a new hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// WithCommand adds a command to the hint.
func (h *Hint) WithCommand(command string) *Hint {
	h.Command = command
	return h
}

// String returns a string representation of the hint.
func (h *Hint) String() string {
	parts := []string{"Hint: " + h.Message}
	if h.Command != "" {
		parts = append(parts, "   Run: "+h.Command)
	}
	return strings.Join(parts, "\n")
}

// ForError returns guidance for a failed run, most specific first.
func ForError(err error) []*Hint {
	if err == nil {
		return nil
	}
	var out []*Hint

	var ioErr *errors.IOError
	if errors.As(err, &ioErr) && ioErr.Path != "" {
		out = append(out, New(fmt.Sprintf("Place the file at %s, or point to it with --%s.",
			ioErr.Path, flagForPath(ioErr.Path))))
	}

	var colErr *errors.ColumnNotFoundError
	if errors.As(err, &colErr) {
		out = append(out, New(fmt.Sprintf(
			"Rename the %s column in the sheet, or add its label as an alternate in a schema file.",
			colErr.Field)).WithCommand("rollcall check --schema schema.yaml"))
	}

	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Component == "mail" {
		out = append(out, New("Set mail.template in .rollcall.yaml, or use --mail-mode none to skip the message."))
	}

	var dispErr *errors.DispatchError
	if errors.As(err, &dispErr) && dispErr.DraftPath != "" {
		out = append(out, New(fmt.Sprintf("The message was kept at %s; open it and send it by hand.",
			dispErr.DraftPath)))
	}

	var valErr *errors.ValidationError
	if errors.As(err, &valErr) && valErr.Field != "" {
		out = append(out, New(fmt.Sprintf("Check the %s value; run without it to choose from a menu.", valErr.Field)))
	}

	if errors.IsCanceled(err) {
		out = append(out, New("The run was interrupted; nothing was sent."))
	}
	return out
}

// flagForPath guesses which input flag names the missing file.
func flagForPath(path string) string {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(base, "team"), strings.Contains(base, "contact"), strings.Contains(base, "master"):
		return "contacts"
	case strings.HasSuffix(base, ".html"), strings.HasSuffix(base, ".md"):
		return "template"
	}
	return "roster"
}
