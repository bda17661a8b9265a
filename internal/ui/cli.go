package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/config"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/db"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/logging"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   appointment.Repository
	config *config.Config
	logger *zap.Logger
	now    func() time.Time
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened from the configured database path on first use.
func NewApp(repo appointment.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, logger: zap.NewNop(), now: time.Now}

	a.root = &cobra.Command{
		Use:   "dayview",
		Short: "A day view of salon appointments",
		Long: `Dayview lays out a salon's appointments for one day, placing
overlapping appointments side by side in lanes.

Import a snapshot of appointment records with "dayview import", then browse
it interactively by running dayview with no arguments.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initLogger(cmd == a.root)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(tui.Options{
				Repo:   a.repo,
				Config: a.config,
				Logger: a.logger,
				Now:    a.now,
			})
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.staffCmd())
	a.root.AddCommand(a.dayCmd())
	a.root.AddCommand(a.weekCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dayview %s (commit: %s)\n", Version, Commit)
		},
	}
}

// initLogger replaces the no-op logger with one built from the config.
// The full-screen view never logs to stderr.
func (a *App) initLogger(fullScreen bool) error {
	build := logging.New
	if fullScreen {
		build = logging.NewForTUI
	}
	logger, err := build(a.config.Log, a.debug)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// today returns the current time in the configured timezone.
func (a *App) today() (time.Time, error) {
	loc, err := a.config.Location()
	if err != nil {
		return time.Time{}, err
	}
	return a.now().In(loc), nil
}

// ensureRepo opens the configured database if no repository was given.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository and flushes the logger.
func (a *App) Close() error {
	_ = a.logger.Sync()
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
