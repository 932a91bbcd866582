package mailer

import (
	"context"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/pkg/constants"
	"github.com/agentstation/rollcall/pkg/contacts"
	"github.com/agentstation/rollcall/pkg/errors"
	"github.com/agentstation/rollcall/pkg/logging"
)

// Mailer is the rollcall.Dispatcher backed by email.
type Mailer struct {
	cfg    Config
	tmpl   *Template
	drafts DraftStore
	sender Sender
	now    func() utc.Time
}

var _ rollcall.Dispatcher = (*Mailer)(nil)

// Option configures a Mailer.
type Option func(*Mailer)

// WithSender replaces the SMTP sender.
func WithSender(s Sender) Option {
	return func(m *Mailer) { m.sender = s }
}

// WithClock replaces the clock used for message dates and draft names.
func WithClock(now func() utc.Time) Option {
	return func(m *Mailer) { m.now = now }
}

// New validates cfg and loads its template. A missing or broken template is
// a ConfigError so callers can fail before doing any work.
func New(cfg Config, opts ...Option) (*Mailer, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode == ModeNone {
		return nil, errors.NewConfigError("mail", "mode none has no dispatcher", nil)
	}

	tmpl, err := LoadTemplate(cfg.Template)
	if err != nil {
		return nil, errors.NewConfigError("mail", "cannot load template "+cfg.Template, err)
	}

	m := &Mailer{
		cfg:    cfg,
		tmpl:   tmpl,
		drafts: DraftStore{Dir: cfg.DraftsDir},
		sender: NewSMTPSender(cfg.SMTP),
		now:    utc.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Mode returns the configured dispatch mode.
func (m *Mailer) Mode() Mode {
	return m.cfg.Mode
}

// Compose builds the message for a handoff.
func (m *Mailer) Compose(h rollcall.Handoff) (*Message, error) {
	recipients := contacts.Recipients(h.Recipients)
	if len(recipients) == 0 {
		return nil, errors.NewValidationError("recipients", len(h.Recipients), "no valid emails to send")
	}

	now := m.now()
	body, err := m.tmpl.Render(TemplateData{
		Subject:    m.cfg.Subject,
		Recipients: len(recipients),
		Statuses:   h.Selection.Statuses,
		Cycles:     h.Selection.Cycles,
		Date:       now.Format("2 January 2006"),
		RunID:      h.RunID,
	})
	if err != nil {
		return nil, err
	}

	return &Message{
		ID:      uuid.NewString() + "@rollcall",
		From:    m.cfg.From,
		To:      recipients,
		Subject: m.cfg.Subject,
		HTML:    body,
		Date:    now,
	}, nil
}

// Dispatch composes the message and, depending on the mode, saves it as a
// draft or sends it. When sending fails the message is saved as a draft and
// a DispatchError naming the draft is returned.
func (m *Mailer) Dispatch(ctx context.Context, h rollcall.Handoff) (*rollcall.Delivery, error) {
	log := logging.FromContext(ctx)

	msg, err := m.Compose(h)
	if err != nil {
		return nil, err
	}
	delivery := &rollcall.Delivery{
		Mode:       string(m.cfg.Mode),
		Recipients: msg.To,
		MessageID:  msg.ID,
	}

	if m.cfg.Mode == ModeDraft {
		path, err := m.drafts.Save(msg, m.now())
		if err != nil {
			return nil, err
		}
		delivery.DraftPath = path
		log.Info().Str("draft", path).Int("recipients", len(msg.To)).Msg("Saved message for review")
		return delivery, nil
	}

	data, err := msg.Bytes()
	if err != nil {
		return nil, err
	}
	sctx, cancel := withSendTimeout(ctx, constants.DispatchTimeout)
	defer cancel()

	if err := m.sender.Send(sctx, m.cfg.From, msg.To, data); err != nil {
		dispatchErr := &errors.DispatchError{Recipients: len(msg.To), Err: err}
		if path, saveErr := m.drafts.Save(msg, m.now()); saveErr == nil {
			dispatchErr.DraftPath = path
		} else {
			log.Error().Err(saveErr).Msg("Could not save draft after failed send")
		}
		return nil, dispatchErr
	}

	delivery.Sent = true
	log.Info().Int("recipients", len(msg.To)).Str("message_id", msg.ID).Msg("Sent message")
	return delivery, nil
}
