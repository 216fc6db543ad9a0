package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/adibhanna/focusup/internal/clock"
	"github.com/adibhanna/focusup/internal/config"
	"github.com/adibhanna/focusup/internal/leaderboard"
	"github.com/adibhanna/focusup/internal/migrate"
	"github.com/adibhanna/focusup/internal/models"
	"github.com/adibhanna/focusup/internal/recorder"
	"github.com/adibhanna/focusup/internal/storage"
	"github.com/adibhanna/focusup/internal/timer"
	"github.com/adibhanna/focusup/internal/users"
)

// skipMigration marks commands that handle the storage version themselves.
const skipMigration = "skip-migration"

// app holds the flags and the services built from them for one invocation.
type app struct {
	configPath string
	dataDir    string
	store      string

	clock clock.Clock
	ticks timer.TickSource

	manager  *config.Manager
	cfg      config.Config
	kv       storage.KV
	users    *users.Registry
	progress *storage.ProgressRepository
	recorder *recorder.Recorder
	board    *leaderboard.Service
}

func newApp() *app {
	return &app{clock: clock.System{}, ticks: timer.EverySecond}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "focusup",
		Short: "Study focus tracker for the terminal",
		Long: `focusup runs focus/break interval sessions toward a study target, records
how long you actually focused, and shows your progress and weekly ranking.

Run without a command to open the interactive dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.focusup/config.yaml)")
	flags.StringVar(&a.dataDir, "data-dir", "", "directory for stored progress")
	flags.StringVar(&a.store, "store", "", "storage backend: file or sqlite")

	root.AddCommand(
		newTUICmd(a),
		newStartCmd(a),
		newStatsCmd(a),
		newLeaderboardCmd(a),
		newUsersCmd(a),
		newMigrateCmd(a),
	)
	return root
}

// open loads configuration, opens the store and brings it to the current
// storage version.
func (a *app) open(cmd *cobra.Command) error {
	config.LoadEnv()

	manager, err := config.NewManager(a.configPath)
	if err != nil {
		return err
	}
	cfg := *manager.Config()
	if err := config.ApplyEnv(&cfg); err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.store != "" {
		cfg.Store = a.store
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", manager.Path(), err)
	}

	kv, err := storage.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		return err
	}
	a.manager = manager
	a.cfg = cfg
	a.kv = kv

	if cmd.Annotations[skipMigration] == "" {
		report, err := migrate.Run(kv, a.clock, migrate.Options{SeedDemo: cfg.SeedDemo})
		if err != nil {
			return err
		}
		if report.Reset {
			log.Println(report)
		}
	}

	a.users = users.NewRegistry(kv, a.clock)
	a.progress = storage.NewProgressRepository(kv)
	a.recorder = recorder.New(a.progress, a.clock)
	a.board = leaderboard.NewService(a.users, a.progress, cfg.Leaderboard.Entries, a.clock)
	return nil
}

func (a *app) close() {
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			log.Printf("closing store: %v", err)
		}
	}
}

// currentUser returns the active profile and its stored progress.
func (a *app) currentUser() (models.User, models.UserProgress, error) {
	u, err := a.users.Current()
	if errors.Is(err, users.ErrNoCurrent) {
		return models.User{}, models.UserProgress{}, errors.New("no user selected; run `focusup users add NAME` first")
	}
	if err != nil {
		return models.User{}, models.UserProgress{}, err
	}
	return u, a.progress.Load(u.ID), nil
}

// Execute runs the focusup command line.
func Execute(ctx context.Context) error {
	a := newApp()
	defer a.close()
	return newRootCmd(a).ExecuteContext(ctx)
}
