package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/rollcall/internal/mailer"
	"github.com/agentstation/rollcall/pkg/constants"
	"github.com/agentstation/rollcall/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables, .env files and command-line flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Inputs
	Roster     InputConfig
	Contacts   InputConfig
	SchemaPath string
	MaxRows    int

	// Mail
	Mail mailer.Config

	// Logging configuration. LogLevel comes from --log-level only;
	// EnvLogLevel from LOG_LEVEL.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// InputConfig locates one input table.
type InputConfig struct {
	Path  string
	Sheet string
}

// Configuration keys.
const (
	keyRosterPath    = "roster.path"
	keyRosterSheet   = "roster.sheet"
	keyContactsPath  = "contacts.path"
	keyContactsSheet = "contacts.sheet"
	keySchemaPath    = "schema.path"
	keyMaxRows       = "report.max_rows"
	keyMailMode      = "mail.mode"
	keyMailFrom      = "mail.from"
	keyMailSubject   = "mail.subject"
	keyMailTemplate  = "mail.template"
	keyMailDrafts    = "mail.drafts_dir"
	keySMTPHost      = "mail.smtp.host"
	keySMTPPort      = "mail.smtp.port"
	keySMTPUser      = "mail.smtp.username"
	keySMTPPassword  = "mail.smtp.password"
	keyLogFormat     = "log.format"
	keyLogOutput     = "log.output"
)

// newViper returns a viper instance reading ROLLCALL_* variables with the
// defaults set. Keys map to variables by upper-casing and replacing dots and
// dashes with underscores, e.g. mail.smtp.host is ROLLCALL_MAIL_SMTP_HOST.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyRosterPath, constants.DefaultRosterPath)
	v.SetDefault(keyRosterSheet, "")
	v.SetDefault(keyContactsPath, constants.DefaultContactsPath)
	v.SetDefault(keyContactsSheet, "")
	v.SetDefault(keySchemaPath, "")
	v.SetDefault(keyMaxRows, constants.MaxExceptionRows)
	v.SetDefault(keyMailMode, string(mailer.ModeDraft))
	v.SetDefault(keyMailFrom, "")
	v.SetDefault(keyMailSubject, constants.DefaultSubject)
	v.SetDefault(keyMailTemplate, constants.DefaultTemplatePath)
	v.SetDefault(keyMailDrafts, constants.DefaultDraftsDir)
	v.SetDefault(keySMTPHost, "")
	v.SetDefault(keySMTPPort, constants.DefaultSMTPPort)
	v.SetDefault(keySMTPUser, "")
	v.SetDefault(keySMTPPassword, "")
	v.SetDefault(keyLogFormat, "auto")
	v.SetDefault(keyLogOutput, "stderr")
	return v
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (bound by the root command)
// 2. Environment variables (ROLLCALL_*)
// 3. .env files
// 4. Config file (configFile, or .rollcall.yaml in the working or home directory)
// 5. Defaults
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	// .env files are loaded before viper reads the environment.
	loadEnvFiles()

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}
	return configFrom(v), nil
}

// readConfigFile reads an explicit config file, which must exist, or the
// first .rollcall.yaml found, which may not.
func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.NewConfigError("config", "cannot read "+configFile, err)
		}
		return nil
	}

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetConfigType("yaml")
	v.SetConfigName(constants.ConfigName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError("config", "cannot read "+v.ConfigFileUsed(), err)
	}
	return nil
}

// configFrom builds a Config from the current viper state.
func configFrom(v *viper.Viper) *Config {
	return &Config{
		ConfigFile: v.ConfigFileUsed(),

		Roster: InputConfig{
			Path:  v.GetString(keyRosterPath),
			Sheet: v.GetString(keyRosterSheet),
		},
		Contacts: InputConfig{
			Path:  v.GetString(keyContactsPath),
			Sheet: v.GetString(keyContactsSheet),
		},
		SchemaPath: v.GetString(keySchemaPath),
		MaxRows:    v.GetInt(keyMaxRows),

		Mail: mailer.Config{
			Mode:      mailer.Mode(v.GetString(keyMailMode)),
			From:      v.GetString(keyMailFrom),
			Subject:   v.GetString(keyMailSubject),
			Template:  v.GetString(keyMailTemplate),
			DraftsDir: v.GetString(keyMailDrafts),
			SMTP: mailer.SMTPConfig{
				Host:     v.GetString(keySMTPHost),
				Port:     v.GetInt(keySMTPPort),
				Username: v.GetString(keySMTPUser),
				Password: v.GetString(keySMTPPassword),
			},
		},

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", v.GetString(keyLogFormat)),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", v.GetString(keyLogOutput)),
	}
}

// UpdateFromFlags updates config values from parsed global flags.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	c.LogLevel = logLevel
}

// loadEnvFiles loads environment variables from .env files.
// .env.local does not override values already set by .env or the shell.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
