package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/weekwise/internal/cli"
	"github.com/julianstephens/weekwise/internal/constants"
	apperrors "github.com/julianstephens/weekwise/internal/errors"
	"github.com/julianstephens/weekwise/internal/logger"
	"github.com/julianstephens/weekwise/internal/scheduler"
	"github.com/julianstephens/weekwise/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage location: sqlite file path or postgres:// URL." type:"path" default:"~/.config/weekwise/weekwise.db" env:"WEEKWISE_CONFIG"`
	User    string `help:"User the command acts on." default:"default" env:"WEEKWISE_USER"`
	Debug   bool   `help:"Enable debug logging."`

	Init  cli.InitCmd `cmd:"" help:"Initialize weekwise storage."`
	Plan  cli.PlanCmd `cmd:"" help:"Generate a week plan."`
	Feed  cli.FeedCmd `cmd:"" help:"Render the week plan as an ICS calendar feed."`
	Entry struct {
		Add    cli.EntryAddCmd    `cmd:"" help:"Add a task or project."`
		List   cli.EntryListCmd   `cmd:"" help:"List entries."`
		Status cli.EntryStatusCmd `cmd:"" help:"Update an entry's status."`
		Delete cli.EntryDeleteCmd `cmd:"" help:"Delete an entry."`
	} `cmd:"" help:"Manage tasks and projects."`
	Busy struct {
		Add  cli.BusyAddCmd  `cmd:"" help:"Add an imported busy block."`
		List cli.BusyListCmd `cmd:"" help:"List busy blocks in a window."`
	} `cmd:"" help:"Manage imported busy intervals."`
	Source struct {
		List    cli.SourceListCmd    `cmd:"" help:"List calendar sources."`
		Enable  cli.SourceEnableCmd  `cmd:"" help:"Enable a calendar source."`
		Disable cli.SourceDisableCmd `cmd:"" help:"Disable a calendar source."`
	} `cmd:"" help:"Manage calendar import sources."`
	Settings struct {
		Show cli.SettingsShowCmd `cmd:"" help:"Show calendar settings."`
		Set  cli.SettingsSetCmd  `cmd:"" help:"Update calendar settings."`
	} `cmd:"" help:"Manage calendar settings."`
	Token struct {
		Create cli.TokenCreateCmd `cmd:"" help:"Mint a signed calendar-feed token."`
		Verify cli.TokenVerifyCmd `cmd:"" help:"Verify a calendar-feed token."`
	} `cmd:"" help:"Manage calendar-feed tokens."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Deterministic week planner: packs tasks and projects around fixed appointments and imported calendars"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if storage.IsPostgresConfig(CLI.Config) && storage.HasEmbeddedCredentials(CLI.Config) {
		apperrors.Fatalf("connection string contains an embedded password; use PGPASSWORD or .pgpass instead")
	}

	logDir := filepath.Dir(CLI.Config)
	if storage.IsPostgresConfig(CLI.Config) {
		home, err := os.UserHomeDir()
		if err == nil {
			logDir = filepath.Join(home, ".config", constants.AppName)
		} else {
			logDir = "."
		}
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := storage.NewStore(CLI.Config)
	defer store.Close()

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(store, store, store),
		UserID:    CLI.User,
	}

	apperrors.Fatal(ctx.Run(appCtx))
}
