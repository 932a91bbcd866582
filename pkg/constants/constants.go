// Package constants provides shared constants used throughout the rollcall codebase.
// This includes file locations, limits, file permissions, and other values
// that should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default input locations, relative to the working directory.
const (
	// DefaultRosterPath is the badge tracker workbook.
	DefaultRosterPath = "data/EY Badges Tracker.xlsx"

	// DefaultContactsPath is the team master workbook holding contact addresses.
	DefaultContactsPath = "data/Emerging Tech Team - FY 26.xlsx"

	// DefaultDraftsDir is where composed messages are kept for review.
	DefaultDraftsDir = "drafts"

	// DefaultTemplatePath is the message body template.
	DefaultTemplatePath = "email/template.html"

	// DefaultSubject is the message subject when none is configured.
	DefaultSubject = "Group Email"

	// ConfigName is the config file base name searched in $HOME and the working directory.
	ConfigName = ".rollcall"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "ROLLCALL"
)

// Limit constants define various limits and capacities
const (
	// MaxExceptionRows bounds the exception listing printed by the report.
	MaxExceptionRows = 100

	// DefaultSMTPPort is used when mail.smtp.port is unset.
	DefaultSMTPPort = 25

	// DispatchTimeout bounds a single SMTP transmission.
	DispatchTimeout = 30 * time.Second
)
