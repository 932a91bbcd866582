// Package application provides the application interface for rollcall commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            opts, err := app.PipelineOptions()
//	            if err != nil {
//	                return err
//	            }
//	            p, err := rollcall.New(opts...)
//	            // ...
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    PipelineOptionsFunc: func() ([]rollcall.Option, error) {
//	        return []rollcall.Option{rollcall.WithLoader(fake)}, nil
//	    },
//	}
//	cmd := run.NewCommand(mock)
package application

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/rollcall"
)

// Application provides what commands need from the running CLI.
// The App struct from cmd/rollcall/app implements this interface.
type Application interface {
	// PipelineOptions returns the options every pipeline of this process
	// shares: the schema, the table loader, the input sources and the logger.
	PipelineOptions() ([]rollcall.Option, error)

	// Dispatcher builds the configured dispatcher. It returns nil without an
	// error when dispatching is disabled.
	Dispatcher() (rollcall.Dispatcher, error)

	// Prompter returns an interactive prompter writing to out, or nil when
	// standard input is not a terminal.
	Prompter(out io.Writer) rollcall.Prompter

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, text, json, yaml).
	// Empty means detect from the terminal.
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// MaxRows bounds the exception listing.
	MaxRows() int

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
