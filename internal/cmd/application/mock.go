// Package application provides test doubles for the command application interface.
package application

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/cmd/application"
	"github.com/agentstation/rollcall/pkg/constants"
)

// Mock provides a mock implementation of application.Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    PipelineOptionsFunc: func() ([]rollcall.Option, error) {
//	        return []rollcall.Option{rollcall.WithLoader(loader)}, nil
//	    },
//	    OutputFormatFunc: func() string { return "text" },
//	}
//	cmd := run.NewCommand(mock)
type Mock struct {
	PipelineOptionsFunc func() ([]rollcall.Option, error)
	DispatcherFunc      func() (rollcall.Dispatcher, error)
	PrompterFunc        func(out io.Writer) rollcall.Prompter
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	NoColorFunc         func() bool
	MaxRowsFunc         func() int
	VersionFunc         func() string
	CommitFunc          func() string
	DateFunc            func() string
	BuiltByFunc         func() string
}

var _ application.Application = (*Mock)(nil)

// PipelineOptions returns options using the mock function or none.
func (m *Mock) PipelineOptions() ([]rollcall.Option, error) {
	if m.PipelineOptionsFunc != nil {
		return m.PipelineOptionsFunc()
	}
	return nil, nil
}

// Dispatcher returns a dispatcher using the mock function or nil.
func (m *Mock) Dispatcher() (rollcall.Dispatcher, error) {
	if m.DispatcherFunc != nil {
		return m.DispatcherFunc()
	}
	return nil, nil
}

// Prompter returns a prompter using the mock function or nil.
func (m *Mock) Prompter(out io.Writer) rollcall.Prompter {
	if m.PrompterFunc != nil {
		return m.PrompterFunc(out)
	}
	return nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "text".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "text"
}

// NoColor returns the mock function result or true.
func (m *Mock) NoColor() bool {
	if m.NoColorFunc != nil {
		return m.NoColorFunc()
	}
	return true
}

// MaxRows returns the mock function result or constants.MaxExceptionRows.
func (m *Mock) MaxRows() int {
	if m.MaxRowsFunc != nil {
		return m.MaxRowsFunc()
	}
	return constants.MaxExceptionRows
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
