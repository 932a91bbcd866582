package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/rollcall/internal/cmd/alerts"
	"github.com/agentstation/rollcall/internal/cmd/globals"
	"github.com/agentstation/rollcall/internal/cmd/hints"
	"github.com/agentstation/rollcall/internal/cmd/output"
	"github.com/agentstation/rollcall/pkg/logging"
)

// Execute runs the rollcall CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "rollcall",
		Short:   "Badge roster reconciliation CLI",
		Version: a.version,
		Long: `Rollcall checks a badge tracker roster for data problems, filters it by
status and completion cycle, keeps one row per GPN, and looks up each
member's email address in the team master so a single message can be
sent to all of them.

Inputs are .xlsx, .csv or .tsv files. Columns are found by their header
labels, ignoring case, spacing and punctuation.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	globals.AddFlags(rootCmd)
	a.addInputFlags(rootCmd)

	rootCmd.SetVersionTemplate("rollcall {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// addInputFlags adds the input and mail flags and binds them to their
// configuration keys, so a flag beats the environment and config file.
func (a *App) addInputFlags(rootCmd *cobra.Command) {
	pf := rootCmd.PersistentFlags()
	pf.String("roster", "", "roster workbook or csv (default \""+a.v.GetString(keyRosterPath)+"\")")
	pf.String("roster-sheet", "", "roster sheet name (default: first sheet)")
	pf.String("contacts", "", "team master workbook or csv (default \""+a.v.GetString(keyContactsPath)+"\")")
	pf.String("contacts-sheet", "", "team master sheet name (default from schema)")
	pf.String("schema", "", "schema file overriding allow-lists and column labels")
	pf.String("mail-mode", "", "what to do with the message: draft, smtp, none (default \"draft\")")
	pf.Int("max-rows", 0, "exception rows to print (default 100)")

	bindings := map[string]string{
		"roster":         keyRosterPath,
		"roster-sheet":   keyRosterSheet,
		"contacts":       keyContactsPath,
		"contacts-sheet": keyContactsSheet,
		"schema":         keySchemaPath,
		"mail-mode":      keyMailMode,
		"max-rows":       keyMaxRows,
	}
	for flag, key := range bindings {
		if err := a.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("programming error: failed to bind flag %s: %v", flag, err))
		}
	}
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	if _, err := output.ParseFormat(flags.Format); err != nil {
		return err
	}

	if flags.Config != "" {
		if err := readConfigFile(a.v, flags.Config); err != nil {
			return err
		}
	}

	// Flags are bound to viper, so the config is rebuilt after parsing.
	config := configFrom(a.v)
	config.UpdateFromFlags(flags.Verbose, flags.Quiet, flags.NoColor, flags.Format, flags.LogLevel)

	a.mu.Lock()
	a.config = config
	a.schema = nil
	a.mu.Unlock()

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	a.logger.Debug().
		Str("config_file", a.config.ConfigFile).
		Str("roster", a.config.Roster.Path).
		Str("contacts", a.config.Contacts.Path).
		Msg("Configuration loaded")
	return nil
}

// ExitOnError prints an error with any hints and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	//nolint:errcheck // Ignoring write errors since we're exiting anyway
	_ = alerts.NewWriterTo(w).WriteAlert(alerts.NewError("Error").WithError(err))
	for _, h := range hints.ForError(err) {
		//nolint:errcheck
		fmt.Fprintln(w, h.String())
	}
}
