// Package app provides the application context and dependency management
// for the rollcall CLI. It centralizes configuration, logging and the
// construction of the pipeline collaborators the commands share.
package app

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/cmd/application"
	"github.com/agentstation/rollcall/internal/mailer"
	"github.com/agentstation/rollcall/internal/prompt"
	"github.com/agentstation/rollcall/internal/sheets"
	"github.com/agentstation/rollcall/pkg/errors"
	"github.com/agentstation/rollcall/pkg/schema"
)

// App represents the rollcall application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	v      *viper.Viper
	config *Config

	// Logger
	logger *zerolog.Logger

	// Standard input, used by the interactive prompt.
	stdin *os.File

	// Schema (lazy-initialized)
	mu     sync.Mutex
	schema *schema.Schema
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		v:       newViper(),
		stdin:   os.Stdin,
	}

	config, err := LoadConfig(app.v, "")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value, empty for auto detection.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoColor reports whether --no-color was given.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// MaxRows returns report.max_rows.
func (a *App) MaxRows() int {
	return a.config.MaxRows
}

// Schema returns the schema from schema.path, or the embedded default.
// The result is cached.
func (a *App) Schema() (*schema.Schema, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.schema != nil {
		return a.schema, nil
	}

	var (
		s   *schema.Schema
		err error
	)
	if a.config.SchemaPath != "" {
		s, err = schema.Load(a.config.SchemaPath)
	} else {
		s, err = schema.Default()
	}
	if err != nil {
		return nil, errors.NewConfigError("schema", "cannot load schema", err)
	}
	a.schema = s
	return s, nil
}

// PipelineOptions returns the schema, loader and input options.
func (a *App) PipelineOptions() ([]rollcall.Option, error) {
	s, err := a.Schema()
	if err != nil {
		return nil, err
	}
	return []rollcall.Option{
		rollcall.WithSchema(s),
		rollcall.WithLoader(sheets.NewLoader()),
		rollcall.WithRoster(rollcall.Source{Path: a.config.Roster.Path, Sheet: a.config.Roster.Sheet}),
		rollcall.WithContacts(rollcall.Source{Path: a.config.Contacts.Path, Sheet: a.config.Contacts.Sheet}),
	}, nil
}

// Dispatcher builds the mailer for mail.mode, or returns nil for mode none.
func (a *App) Dispatcher() (rollcall.Dispatcher, error) {
	mode, err := mailer.ParseMode(string(a.config.Mail.Mode))
	if err != nil {
		return nil, err
	}
	if mode == mailer.ModeNone {
		return nil, nil
	}
	cfg := a.config.Mail
	cfg.Mode = mode
	return mailer.New(cfg)
}

// Prompter returns a prompt on standard input when it is a terminal.
func (a *App) Prompter(out io.Writer) rollcall.Prompter {
	if a.stdin == nil || !prompt.Interactive(a.stdin) {
		return nil
	}
	return prompt.New(a.stdin, out)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStdin sets the file the prompt reads from. Nil disables prompting.
func WithStdin(f *os.File) Option {
	return func(a *App) error {
		a.stdin = f
		return nil
	}
}
