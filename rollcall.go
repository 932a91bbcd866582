// Package rollcall reconciles a people roster against fixed status and cycle
// allow-lists, reduces it to one entry per identifier and resolves each
// identifier to a contact address through a second table, ready for a bulk
// notification.
//
// A Pipeline runs the stages of Stages in order on a single goroutine:
//
//	p, err := rollcall.New(
//	    rollcall.WithLoader(sheets.NewLoader()),
//	    rollcall.WithRoster(rollcall.Source{Path: "data/roster.xlsx"}),
//	    rollcall.WithContacts(rollcall.Source{Path: "data/contacts.xlsx"}),
//	    rollcall.WithStatuses("Completed"),
//	)
//	if err != nil {
//	    return err
//	}
//	res, err := p.Run(ctx)
//
// Missing columns and unreadable inputs abort the run before anything is
// reported. Data quality findings and unresolved contacts are reported and
// never abort.
package rollcall

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/rollcall/pkg/contacts"
	"github.com/agentstation/rollcall/pkg/errors"
	"github.com/agentstation/rollcall/pkg/logging"
	"github.com/agentstation/rollcall/pkg/reconcile"
	"github.com/agentstation/rollcall/pkg/roster"
	"github.com/agentstation/rollcall/pkg/schema"
)

// Pipeline runs one reconciliation. A Pipeline holds no state between runs.
type Pipeline struct {
	config *config
	hooks  *hooks
}

// New creates a Pipeline with the given options.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		config: defaultConfig(),
		hooks:  newHooks(),
	}
	if err := p.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	c := p.config
	if c.schema == nil {
		s, err := schema.Default()
		if err != nil {
			return nil, fmt.Errorf("loading default schema: %w", err)
		}
		c.schema = s
	}
	if c.loader == nil {
		return nil, errors.NewConfigError("pipeline", "a table loader is required", nil)
	}
	if c.roster.Path == "" {
		return nil, errors.NewConfigError("roster", "no roster file configured", nil)
	}
	if c.stopAfter.needsContacts() && c.contacts.Path == "" {
		return nil, errors.NewConfigError("contacts", "no contacts file configured", nil)
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}
	return p, nil
}

// OnStage registers a callback invoked after each completed stage.
func (p *Pipeline) OnStage(fn StageHook) {
	p.hooks.add(fn)
}

// Run executes the stages in order. The returned Result is never nil and
// reflects the stages that completed, including when an error is returned.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	r := &run{
		Pipeline: p,
		res:      &Result{RunID: uuid.NewString(), StartedAt: utc.Now()},
	}
	defer func() {
		r.res.FinishedAt = utc.Now()
		r.res.elapsed = time.Since(start)
	}()

	ctx = logging.WithLogger(ctx, p.config.logger)
	ctx = logging.WithRunID(ctx, r.res.RunID)

	steps := []struct {
		stage Stage
		fn    func(context.Context) error
	}{
		{StageLoad, r.load},
		{StageResolveColumns, r.resolveColumns},
		{StageClassifyExceptions, r.classify},
		{StageReportExceptions, r.reportExceptions},
		{StageCollectSelections, r.collectSelections},
		{StageFilter, r.filter},
		{StageDeduplicate, r.deduplicate},
		{StageBuildContactMap, r.buildContactMap},
		{StageResolveContacts, r.resolveContacts},
		{StageReportUnresolved, r.reportUnresolved},
		{StageHandoff, r.handoff},
	}

	for _, step := range steps {
		if step.stage > p.config.stopAfter || r.done {
			break
		}
		if err := ctx.Err(); err != nil {
			return r.res, fmt.Errorf("%w before %s: %w", errors.ErrCanceled, step.stage, err)
		}

		sctx := logging.WithStage(ctx, step.stage.String())
		log := logging.FromContext(sctx)
		log.Debug().Msg("Stage started")

		t0 := time.Now()
		if err := step.fn(sctx); err != nil {
			log.Error().Err(err).Msg("Stage failed")
			return r.res, err
		}
		elapsed := time.Since(t0)

		r.res.Completed = append(r.res.Completed, step.stage)
		log.Debug().Dur("elapsed", elapsed).Msg("Stage completed")
		p.hooks.trigger(step.stage, elapsed)
	}

	logging.FromContext(ctx).Info().
		Int("members", len(r.res.Members)).
		Int("resolved", len(r.res.Resolution.Resolved)).
		Int("unresolved", len(r.res.Resolution.Unresolved)).
		Msg("Run finished")
	return r.res, nil
}

// run carries the intermediate tables of one Run.
type run struct {
	*Pipeline
	res *Result

	rosterTable  *roster.Table
	contactTable *roster.Table
	filtered     *roster.Table
	unique       *roster.Table
	directory    *contacts.Directory

	// done ends the run early without error.
	done bool
}

// load reads both tables up front so a bad contacts file aborts the run
// before any report is written.
func (r *run) load(ctx context.Context) error {
	log := logging.FromContext(ctx)

	t, err := r.config.loader.Load(ctx, r.rosterSource())
	if err != nil {
		return err
	}
	r.rosterTable = t
	r.res.RosterRows = t.Len()
	log.Info().Str("path", r.config.roster.Path).Int("rows", t.Len()).Msg("Loaded roster")

	if !r.config.stopAfter.needsContacts() {
		return nil
	}
	t, err = r.config.loader.Load(ctx, r.contactsSource())
	if err != nil {
		return err
	}
	r.contactTable = t
	r.res.ContactRows = t.Len()
	log.Info().Str("path", r.config.contacts.Path).Int("rows", t.Len()).Msg("Loaded contacts")
	return nil
}

func (r *run) rosterSource() Source {
	src := r.config.roster
	if src.Sheet == "" {
		src.Sheet = r.config.schema.Roster.Sheet
	}
	return src
}

func (r *run) contactsSource() Source {
	src := r.config.contacts
	if src.Sheet == "" {
		src.Sheet = r.config.schema.Contacts.Sheet
	}
	return src
}

func (r *run) resolveColumns(ctx context.Context) error {
	b, err := roster.Bind(r.rosterTable, r.config.schema.Roster.Fields)
	if err != nil {
		return fmt.Errorf("roster %s: %w", r.config.roster.Path, err)
	}
	r.res.RosterBinding = b

	if r.contactTable != nil {
		cb, err := roster.Bind(r.contactTable, r.config.schema.Contacts.Fields)
		if err != nil {
			return fmt.Errorf("contacts %s: %w", r.config.contacts.Path, err)
		}
		r.res.ContactBinding = cb
	}

	ev := logging.FromContext(ctx).Debug()
	for _, f := range b.Fields() {
		ev = ev.Str(string(f), b.Column(f))
	}
	ev.Msg("Bound roster columns")
	return nil
}

func (r *run) classify(ctx context.Context) error {
	s := r.config.schema
	r.res.Exceptions = reconcile.NewClassifier(s.Status, s.Cycle).Classify(r.rosterTable, r.res.RosterBinding)

	ev := logging.FromContext(ctx).Info().Int("exceptions", len(r.res.Exceptions))
	for reason, n := range reconcile.Summary(r.res.Exceptions) {
		ev = ev.Int(reason, n)
	}
	ev.Msg("Classified roster rows")
	return nil
}

func (r *run) reportExceptions(_ context.Context) error {
	if r.config.reporter == nil {
		return nil
	}
	return r.config.reporter.Exceptions(r.res.Exceptions)
}

func (r *run) collectSelections(ctx context.Context) error {
	c := r.config

	statuses, err := r.selectValues(ctx, c.schema.Status, c.statusPreset, c.statuses)
	if err != nil {
		return err
	}
	cycles, err := r.selectValues(ctx, c.schema.Cycle, c.cyclePreset, c.cycles)
	if err != nil {
		return err
	}
	r.res.Selection = reconcile.Selection{Statuses: statuses, Cycles: cycles}

	logging.FromContext(ctx).Info().
		Strs("statuses", statuses).
		Strs("cycles", cycles).
		Msg("Collected selections")

	if c.reporter == nil {
		return nil
	}
	return c.reporter.Selections(r.res.Selection)
}

// selectValues returns preset values checked against the domain, or asks
// the prompter, or selects nothing.
func (r *run) selectValues(ctx context.Context, d schema.Domain, preset bool, values []string) ([]string, error) {
	if preset {
		return d.Match(values)
	}
	if r.config.prompter == nil {
		return nil, nil
	}
	title := fmt.Sprintf("Select one or more %s options:", d.Label)
	chosen, err := r.config.prompter.Select(ctx, title, d.Options())
	if err != nil {
		return nil, fmt.Errorf("selecting %s: %w", d.Label, err)
	}
	return d.Match(chosen)
}

func (r *run) filter(ctx context.Context) error {
	r.filtered = reconcile.Filter(r.rosterTable, r.res.RosterBinding, r.res.Selection)
	r.res.FilteredRows = r.filtered.Len()
	logging.FromContext(ctx).Info().Int("rows", r.filtered.Len()).Msg("Filtered roster")
	return nil
}

func (r *run) deduplicate(ctx context.Context) error {
	r.unique = reconcile.Dedupe(r.filtered, r.res.RosterBinding)
	r.res.Members = reconcile.Members(r.unique, r.res.RosterBinding)
	logging.FromContext(ctx).Info().Int("members", len(r.res.Members)).Msg("Deduplicated roster")

	if r.unique.Empty() {
		r.done = true
	}
	if r.config.reporter == nil {
		return nil
	}
	return r.config.reporter.Members(r.res.Members)
}

func (r *run) buildContactMap(ctx context.Context) error {
	r.directory = contacts.Build(r.contactTable, r.res.ContactBinding)
	logging.FromContext(ctx).Info().Int("entries", r.directory.Len()).Msg("Built contact map")
	return nil
}

func (r *run) resolveContacts(ctx context.Context) error {
	r.res.Resolution = r.directory.Resolve(r.res.Members)
	logging.FromContext(ctx).Info().
		Int("resolved", len(r.res.Resolution.Resolved)).
		Int("unresolved", len(r.res.Resolution.Unresolved)).
		Msg("Resolved contacts")
	return nil
}

func (r *run) reportUnresolved(_ context.Context) error {
	if r.config.reporter == nil {
		return nil
	}
	return r.config.reporter.Resolution(r.res.Resolution)
}

func (r *run) handoff(ctx context.Context) error {
	if r.config.dispatcher == nil {
		return nil
	}
	log := logging.FromContext(ctx)

	recipients := contacts.Recipients(r.res.Resolution.Addresses())
	if len(recipients) == 0 {
		log.Warn().Msg("No valid emails to send")
		if r.config.reporter != nil {
			return r.config.reporter.Delivery(nil)
		}
		return nil
	}

	d, err := r.config.dispatcher.Dispatch(ctx, Handoff{
		RunID:      r.res.RunID,
		Recipients: recipients,
		Selection:  r.res.Selection,
	})
	if err != nil {
		return err
	}
	if d == nil {
		d = &Delivery{Recipients: recipients}
	}
	r.res.Delivery = d
	log.Info().Int("recipients", len(recipients)).Str("mode", d.Mode).Bool("sent", d.Sent).Msg("Handed off")

	if r.config.reporter == nil {
		return nil
	}
	return r.config.reporter.Delivery(d)
}
