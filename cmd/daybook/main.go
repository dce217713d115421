package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/daybookhq/daybook/internal/cli"
	"github.com/daybookhq/daybook/internal/config"
	"github.com/daybookhq/daybook/internal/logger"
	"github.com/daybookhq/daybook/internal/rollover"
	"github.com/daybookhq/daybook/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Data     string `help:"Data path: a directory of JSON documents, or a .db file for SQLite." type:"path"`
	LogLevel string `help:"Log level (trace|debug|info|warn|error)."`

	Init cli.InitCmd `cmd:"" help:"Initialize daybook storage."`
	Tui  cli.TuiCmd  `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Today struct {
		Show  cli.TodayShowCmd  `cmd:"" help:"Show today's draft." default:"1"`
		Write cli.TodayWriteCmd `cmd:"" help:"Overwrite today's draft."`
		Hours cli.TodayHoursCmd `cmd:"" help:"Set today's tracked hours."`
	} `cmd:"" help:"Work with today's draft."`
	Journal struct {
		List   cli.JournalListCmd   `cmd:"" help:"List journal entries." default:"1"`
		Show   cli.JournalShowCmd   `cmd:"" help:"Show one entry by date."`
		Delete cli.JournalDeleteCmd `cmd:"" help:"Delete an entry by id."`
	} `cmd:"" help:"Browse the journal archive."`
	Notes struct {
		List   cli.NotesListCmd   `cmd:"" help:"List notes." default:"1"`
		Add    cli.NotesAddCmd    `cmd:"" help:"Add a note."`
		Show   cli.NotesShowCmd   `cmd:"" help:"Show a note."`
		Delete cli.NotesDeleteCmd `cmd:"" help:"Delete a note and its attachments."`
		Attach cli.NotesAttachCmd `cmd:"" help:"Attach files to a note."`
		Copy   cli.NotesCopyCmd   `cmd:"" help:"Copy note content to the clipboard."`
	} `cmd:"" help:"Manage categorized notes."`
	Calendar struct {
		Show cli.CalendarShowCmd `cmd:"" help:"Show tracked hours for a month." default:"1"`
		Set  cli.CalendarSetCmd  `cmd:"" help:"Set hours for a date."`
	} `cmd:"" help:"Hours-tracking calendar."`
	Goals struct {
		List    cli.GoalsListCmd    `cmd:"" help:"List goals." default:"1"`
		Add     cli.GoalsAddCmd     `cmd:"" help:"Create a goal (max 3)."`
		Edit    cli.GoalsEditCmd    `cmd:"" help:"Edit a goal."`
		Deposit cli.GoalsDepositCmd `cmd:"" help:"Add to a goal's current amount."`
		Delete  cli.GoalsDeleteCmd  `cmd:"" help:"Delete a goal."`
	} `cmd:"" help:"Financial goals."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup snapshot." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List backup snapshots."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a snapshot."`
	} `cmd:"" help:"Manage backups."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run diagnostics."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored data for inconsistencies."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("daybook"),
		kong.Description("Personal journaling, notes, hours and goals, stored as local JSON documents."),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	cfg, err := config.Load(config.Config{
		DataPath: CLI.Data,
		LogLevel: CLI.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("cli", logger.ParseLevel(cfg.LogLevel))

	// The data path picks the backend: a .db file selects SQLite, anything
	// else is a directory of JSON documents.
	var store storage.Provider
	var bridge storage.Bridge
	if cfg.UsesSQLite() {
		store = storage.NewSQLiteStore(cfg.DataPath, log)
	} else {
		fb, err := storage.NewFileBridge(cfg.DataPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		bridge = fb
		store = storage.NewJSONStore(fb, log)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:    store,
		Rollover: rollover.New(store, log),
		Bridge:   bridge,
		Config:   cfg,
		Log:      log,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
