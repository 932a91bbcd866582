package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rollcall/internal/mailer"
	"github.com/agentstation/rollcall/pkg/constants"
	"github.com/agentstation/rollcall/pkg/errors"
)

func TestConfigDefaults(t *testing.T) {
	cfg := configFrom(newViper())

	assert.Equal(t, constants.DefaultRosterPath, cfg.Roster.Path)
	assert.Equal(t, constants.DefaultContactsPath, cfg.Contacts.Path)
	assert.Empty(t, cfg.Contacts.Sheet)
	assert.Equal(t, constants.MaxExceptionRows, cfg.MaxRows)
	assert.Equal(t, mailer.ModeDraft, cfg.Mail.Mode)
	assert.Equal(t, constants.DefaultSubject, cfg.Mail.Subject)
	assert.Equal(t, constants.DefaultTemplatePath, cfg.Mail.Template)
	assert.Equal(t, constants.DefaultSMTPPort, cfg.Mail.SMTP.Port)
}

func TestConfigEnvironment(t *testing.T) {
	t.Setenv("ROLLCALL_ROSTER_PATH", "in/roster.csv")
	t.Setenv("ROLLCALL_MAIL_SMTP_HOST", "smtp.example.com")
	t.Setenv("ROLLCALL_MAIL_SMTP_PORT", "587")
	t.Setenv("ROLLCALL_REPORT_MAX_ROWS", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := configFrom(newViper())

	assert.Equal(t, "in/roster.csv", cfg.Roster.Path)
	assert.Equal(t, "smtp.example.com", cfg.Mail.SMTP.Host)
	assert.Equal(t, 587, cfg.Mail.SMTP.Port)
	assert.Equal(t, 3, cfg.MaxRows)
	assert.Equal(t, "debug", cfg.EnvLogLevel)
	assert.Empty(t, cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", `
contacts:
  path: team.xlsx
  sheet: Members
mail:
  mode: smtp
  from: badges@example.com
  smtp:
    host: relay.example.com
`)

	cfg, err := LoadConfig(newViper(), path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "team.xlsx", cfg.Contacts.Path)
	assert.Equal(t, "Members", cfg.Contacts.Sheet)
	assert.Equal(t, mailer.ModeSMTP, cfg.Mail.Mode)
	assert.Equal(t, "badges@example.com", cfg.Mail.From)
	assert.Equal(t, "relay.example.com", cfg.Mail.SMTP.Host)
	assert.Equal(t, constants.DefaultRosterPath, cfg.Roster.Path)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(newViper(), filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "json"}
	cfg.UpdateFromFlags(true, false, true, "", "warn")

	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg.UpdateFromFlags(false, false, false, "yaml", "")
	assert.Equal(t, "yaml", cfg.Format)
	assert.Empty(t, cfg.LogLevel)
}
