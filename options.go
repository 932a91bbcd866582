package rollcall

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/rollcall/pkg/errors"
	"github.com/agentstation/rollcall/pkg/schema"
)

// Option is a function that configures a Pipeline.
type Option func(*config) error

type config struct {
	schema     *schema.Schema
	loader     Loader
	prompter   Prompter
	dispatcher Dispatcher
	reporter   Reporter
	logger     *zerolog.Logger

	roster   Source
	contacts Source

	statuses []string
	cycles   []string
	// preset fields skip the prompt even when their list is empty.
	statusPreset bool
	cyclePreset  bool

	stopAfter Stage
}

func defaultConfig() *config {
	return &config{stopAfter: StageHandoff}
}

func (p *Pipeline) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(p.config); err != nil {
			return err
		}
	}
	return nil
}

// WithSchema sets the allow-lists and column bindings.
func WithSchema(s *schema.Schema) Option {
	return func(c *config) error {
		if s == nil {
			return errors.NewConfigError("pipeline", "schema is nil", nil)
		}
		c.schema = s
		return nil
	}
}

// WithLoader sets the table loader. It is required.
func WithLoader(l Loader) Option {
	return func(c *config) error {
		c.loader = l
		return nil
	}
}

// WithPrompter sets the interactive selection prompt. Without one, fields
// not preset by WithStatuses or WithCycles are left unfiltered.
func WithPrompter(p Prompter) Option {
	return func(c *config) error {
		c.prompter = p
		return nil
	}
}

// WithDispatcher sets the notification dispatcher. Without one the run ends
// after reporting unresolved contacts.
func WithDispatcher(d Dispatcher) Option {
	return func(c *config) error {
		c.dispatcher = d
		return nil
	}
}

// WithReporter sets the report sink.
func WithReporter(r Reporter) Option {
	return func(c *config) error {
		c.reporter = r
		return nil
	}
}

// WithLogger sets the logger used for the run.
func WithLogger(l *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithRoster sets the roster table source.
func WithRoster(src Source) Option {
	return func(c *config) error {
		c.roster = src
		return nil
	}
}

// WithContacts sets the contacts table source.
func WithContacts(src Source) Option {
	return func(c *config) error {
		c.contacts = src
		return nil
	}
}

// WithStatuses presets the status selection. Values are validated against
// the status allow-list when selections are collected; none means no filter.
func WithStatuses(values ...string) Option {
	return func(c *config) error {
		c.statuses = values
		c.statusPreset = true
		return nil
	}
}

// WithCycles presets the cycle selection. See WithStatuses.
func WithCycles(values ...string) Option {
	return func(c *config) error {
		c.cycles = values
		c.cyclePreset = true
		return nil
	}
}

// WithStopAfter ends the run once the given stage completes.
func WithStopAfter(stage Stage) Option {
	return func(c *config) error {
		if stage < StageLoad || stage > StageHandoff {
			return errors.NewValidationError("stop_after", stage, "unknown stage")
		}
		c.stopAfter = stage
		return nil
	}
}
