// Package mailer composes the notification sent to resolved contacts and
// either saves it as a draft for review or sends it over SMTP.
package mailer

import (
	"strings"

	"github.com/agentstation/rollcall/pkg/constants"
	"github.com/agentstation/rollcall/pkg/errors"
)

// Mode selects what Dispatch does with a composed message.
type Mode string

// Dispatch modes.
const (
	// ModeDraft saves the message for manual review and sending.
	ModeDraft Mode = "draft"
	// ModeSMTP sends the message and falls back to a draft on failure.
	ModeSMTP Mode = "smtp"
	// ModeNone disables the handoff.
	ModeNone Mode = "none"
)

// ParseMode parses a mode name; empty means ModeDraft.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeDraft, nil
	case ModeDraft, ModeSMTP, ModeNone:
		return m, nil
	}
	return "", errors.NewValidationError("mail.mode", s, "must be one of draft, smtp, none")
}

// SMTPConfig locates the relay used in ModeSMTP.
type SMTPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// Config configures a Mailer.
type Config struct {
	Mode      Mode       `mapstructure:"mode" yaml:"mode"`
	From      string     `mapstructure:"from" yaml:"from"`
	Subject   string     `mapstructure:"subject" yaml:"subject"`
	Template  string     `mapstructure:"template" yaml:"template"`
	DraftsDir string     `mapstructure:"drafts_dir" yaml:"drafts_dir"`
	SMTP      SMTPConfig `mapstructure:"smtp" yaml:"smtp"`
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = ModeDraft
	}
	if c.Subject == "" {
		c.Subject = constants.DefaultSubject
	}
	if c.DraftsDir == "" {
		c.DraftsDir = constants.DefaultDraftsDir
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = constants.DefaultSMTPPort
	}
	return c
}

// Validate checks the fields the mode needs.
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Template == "" {
		return errors.NewConfigError("mail", "no template file configured", nil)
	}
	if c.Mode == ModeSMTP {
		if c.SMTP.Host == "" {
			return errors.NewConfigError("mail", "smtp mode needs mail.smtp.host", nil)
		}
		if c.From == "" {
			return errors.NewConfigError("mail", "smtp mode needs mail.from", nil)
		}
	}
	return nil
}
