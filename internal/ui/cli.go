// Package ui implements the daytimeline command line.
package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/daytimeline/internal/config"
	"github.com/javiermolinar/daytimeline/internal/db"
	"github.com/javiermolinar/daytimeline/internal/i18n"
	"github.com/javiermolinar/daytimeline/internal/logging"
	"github.com/javiermolinar/daytimeline/internal/planner"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *config.Config
	configPath string
	root       *cobra.Command
	msg        *i18n.Printer

	store   schedule.Store
	planner *planner.DayPlanner
	log     *zap.Logger
	flush   func()

	debug   bool
	noColor bool
	timeout time.Duration
	clock   func() time.Time
}

// NewApp creates the CLI. The store is opened on first use so that
// commands like version and config work without a database.
func NewApp(cfg *config.Config) *App {
	a := &App{
		config:     cfg,
		configPath: config.DefaultConfigPath(),
		msg:        i18n.New(cfg.UI.Locale),
		log:        zap.NewNop(),
		flush:      func() {},
	}

	a.root = &cobra.Command{
		Use:   "daytimeline",
		Short: "A day planner on a 15-minute timeline",
		Long: `daytimeline plans one day at a time on a grid of 96 quarter-hour slots.

Events never overlap: a new or edited event that collides with another
one on the same day is rejected.

Run without a command to open the interactive timeline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.noColor {
				DisableColor()
			}
			mode := logging.ModeCLI
			if cmd == a.root {
				mode = logging.ModeTUI
			}
			log, flush, err := logging.New(a.config.Log, mode, a.debug)
			if err != nil {
				return err
			}
			a.log, a.flush = log, flush
			a.log.Debug("command start", zap.String("command", cmd.CommandPath()))
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensurePlanner(); err != nil {
				return err
			}
			return tui.Run(a.planner, a.config, tui.Options{
				Log:     a.log,
				Msg:     a.msg,
				NoColor: a.noColor,
				Timeout: a.timeout,
			})
		},
	}

	flags := a.root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Write debug logs to "+cfg.Log.Path)
	flags.BoolVar(&a.noColor, "no-color", false, "Disable color output")
	flags.DurationVar(&a.timeout, "timeout", 10*time.Second, "Timeout for each database operation")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.datesCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.draftCmd())
	a.root.AddCommand(a.cardCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "daytimeline %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs overrides os.Args, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(out io.Writer) {
	a.root.SetOut(out)
	a.root.SetErr(out)
}

// Describe renders err for the user in the configured language.
func (a *App) Describe(err error) string {
	return a.msg.StoreError(err)
}

// Close releases the store and flushes logs.
func (a *App) Close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	a.flush()
	return err
}

// UseConfigPath changes the file the config commands read and write.
func (a *App) UseConfigPath(path string) {
	a.configPath = path
}

// UseClock overrides time.Now, for tests.
func (a *App) UseClock(now func() time.Time) {
	a.clock = now
	a.planner = nil
}

// UseStore injects a store instead of opening the configured database.
func (a *App) UseStore(store schedule.Store) {
	a.store = store
	a.planner = nil
}

func (a *App) ensurePlanner() error {
	if a.planner != nil {
		return nil
	}
	if a.store == nil {
		store, err := db.New(a.config.Storage.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		a.store = store
	}
	a.planner = planner.New(a.store,
		planner.WithLogger(a.log),
		planner.WithClock(a.now),
		planner.WithSnap(a.config.Timeline.SnapUnaligned))
	return nil
}

// ctx bounds one store round-trip by --timeout.
func (a *App) ctx() (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), a.timeout)
}

func (a *App) now() time.Time {
	if a.clock != nil {
		return a.clock()
	}
	return time.Now()
}

// loadDay opens the planner and selects date.
func (a *App) loadDay(date time.Time) (*schedule.DaySchedule, error) {
	if err := a.ensurePlanner(); err != nil {
		return nil, err
	}
	ctx, cancel := a.ctx()
	defer cancel()
	return a.planner.Load(ctx, date)
}
