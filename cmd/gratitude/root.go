// ABOUTME: Root command, global flags, and per-invocation wiring of stores.
// ABOUTME: Opens the configured backend, builds the logger, and unlocks the journal.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harper/gratitude/internal/charm"
	"github.com/harper/gratitude/internal/config"
	"github.com/harper/gratitude/internal/db"
	"github.com/harper/gratitude/internal/diary"
	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/settings"
	"github.com/harper/gratitude/internal/stats"
	"github.com/harper/gratitude/internal/storage"
	"github.com/harper/gratitude/internal/survey"
	"github.com/harper/gratitude/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Command annotations.
const (
	// annotationNoStore marks commands that manage the backend itself and must not open it.
	annotationNoStore = "gratitude/no-store"
)

// app holds everything a command needs. It is built once per invocation.
type app struct {
	// flags
	dbPath   string
	backend  string
	tz       string
	passcode string
	verbose  bool

	cfg    *config.Config
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time

	kv      storage.KV
	closeKV func() error
	charm   *charm.Client

	entries  *diary.Store
	settings *settings.Store
	surveys  *survey.Store
	calc     *stats.Calculator
}

func newApp() *app {
	return &app{now: time.Now}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gratitude",
		Short: "A daily gratitude journal",
		Long: `gratitude keeps one short entry per day about what you are thankful for.

Write today's entry, keep your streak alive, and watch your two-week chart grow.
Entries live in a local SQLite file by default, or sync through Charm.`,
		SilenceUsage: true,
		Version:      fmt.Sprintf("%s (%s, %s)", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHome()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.dbPath, "db", "", "SQLite database path (implies --backend sqlite)")
	flags.StringVar(&a.backend, "backend", "", "storage backend: sqlite, charm or memory")
	flags.StringVar(&a.tz, "tz", "", "IANA timezone deciding calendar days (default: local)")
	flags.StringVar(&a.passcode, "passcode", "", "journal passcode (default: $GRATITUDE_PASSCODE or prompt)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddCommand(
		newWriteCmd(a),
		newShowCmd(a),
		newListCmd(a),
		newHomeCmd(a),
		newCalendarCmd(a),
		newStreakCmd(a),
		newChartCmd(a),
		newPlanCmd(a),
		newIntroCmd(),
		newSettingsCmd(a),
		newSurveyCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newResetCmd(a),
		newSyncCmd(a),
		newMCPCmd(a),
	)
	return rootCmd
}

// Execute runs the root command and reports errors on stderr.
func Execute() error {
	a := newApp()
	defer func() { _ = a.close() }()

	rootCmd := newRootCmd(a)
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return err
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// setup loads config, opens the backend and builds the stores.
func (a *app) setup(cmd *cobra.Command) error {
	logger, err := newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.loc, err = cfg.Location(); err != nil {
		return err
	}

	if skipStore(cmd) {
		return nil
	}

	if err := a.openBackend(); err != nil {
		return err
	}

	a.entries = diary.NewStore(a.kv, diary.WithLocation(a.loc), diary.WithLogger(a.logger))
	a.settings = settings.NewStore(a.kv, settings.WithLogger(a.logger))
	a.surveys = survey.NewStore(a.kv, survey.WithLogger(a.logger))
	a.calc = stats.NewCalculator(a.loc)

	return a.unlock(cmd)
}

// applyFlags layers command-line flags over the loaded config.
func (a *app) applyFlags(cfg *config.Config) {
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
		cfg.Backend = config.BackendSQLite
	}
	if a.backend != "" {
		cfg.Backend = strings.ToLower(a.backend)
	}
	if a.tz != "" {
		cfg.Timezone = a.tz
	}
}

func (a *app) openBackend() error {
	switch a.cfg.Backend {
	case config.BackendMemory:
		a.kv = storage.NewMemory()
	case config.BackendCharm:
		client, err := a.charmClient()
		if err != nil {
			return err
		}
		a.kv = client
		a.closeKV = client.Close
	default:
		path := a.cfg.DBPath
		if path == "" {
			path = db.DefaultPath()
		}
		kv, err := db.OpenKV(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		a.kv = kv
		a.closeKV = kv.Close
	}
	a.logger.Debug("backend opened", zap.String("backend", a.cfg.Backend))
	return nil
}

// charmClient builds (once) a charm client from config.
func (a *app) charmClient() (*charm.Client, error) {
	if a.charm != nil {
		return a.charm, nil
	}
	stale, err := a.cfg.StaleDuration()
	if err != nil {
		return nil, err
	}
	client, err := charm.NewClient(
		charm.WithHost(a.cfg.CharmHost),
		charm.WithAutoSync(a.cfg.AutoSync),
		charm.WithStaleThreshold(stale),
		charm.WithLogger(a.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize charm: %w", err)
	}
	a.charm = client
	return client, nil
}

func (a *app) close() error {
	var err error
	if a.closeKV != nil {
		err = a.closeKV()
		a.closeKV = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func skipStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" || c.Name() == cobra.ShellCompRequestCmd {
			return true
		}
		if _, ok := c.Annotations[annotationNoStore]; ok {
			return true
		}
	}
	return false
}

// today is the current calendar day in the configured zone.
func (a *app) today() models.Day {
	return a.calc.Today(a.now())
}
