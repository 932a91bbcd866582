package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/rollcall/internal/cmd/output"
)

// FormatWriter writes alerts in an output format.
type FormatWriter struct {
	writer io.Writer
	format output.Format
	color  bool
}

// NewFormatWriter creates a FormatWriter. Color is used for text and table
// output on terminals unless noColor is set.
func NewFormatWriter(w io.Writer, format output.Format, noColor bool) *FormatWriter {
	return &FormatWriter{
		writer: w,
		format: format,
		color:  !noColor && isTerminal(w),
	}
}

// alertData is the structured form of an alert.
type alertData struct {
	Level   string   `json:"level" yaml:"level"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// WriteAlert writes an alert in the configured format.
func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	if fw.format.Structured() {
		data := alertData{
			Level:   alert.Level.String(),
			Message: alert.Message,
			Details: alert.Details,
		}
		if alert.Err != nil {
			data.Error = alert.Err.Error()
		}
		return output.NewFormatter(fw.format).Format(fw.writer, data)
	}

	message := alert.String()
	if fw.color {
		message = alert.Level.Color() + message + resetColor
	}
	if _, err := fmt.Fprintln(fw.writer, message); err != nil {
		return err
	}
	for _, detail := range alert.Details {
		if _, err := fmt.Fprintf(fw.writer, "   %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
