package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/cli/backups"
	"github.com/julianstephens/habitlog/internal/cli/habits"
	"github.com/julianstephens/habitlog/internal/cli/logs"
	"github.com/julianstephens/habitlog/internal/cli/reports"
	"github.com/julianstephens/habitlog/internal/cli/system"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/constants"
	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/metrics"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/storage/postgres"
	"github.com/julianstephens/habitlog/internal/storage/sqldb"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_file}"`
	DB      string `name:"db" help:"SQLite file path or PostgreSQL connection string. For PostgreSQL, keep the password out of the string: use the OS keyring, ${env_db} or .pgpass." type:"string"`

	Init    system.InitCmd    `cmd:"" help:"Initialize habitlog storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`

	Habit   habits.HabitCmd    `cmd:"" help:"Manage habits."`
	Log     logs.LogCmd        `cmd:"" help:"Record and edit time logs."`
	Summary reports.SummaryCmd `cmd:"" help:"Show this week's (or month's) summary." default:"1"`
	Streak  reports.StreakCmd  `cmd:"" help:"Show current streaks."`

	Backup  backups.BackupCmd `cmd:"" help:"Manage database backups (SQLite only)."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Metrics system.MetricsCmd `cmd:"" help:"Print store metrics in Prometheus text format."`
}

// commands that open the database themselves, or not at all
var skipLoad = []string{"init", "doctor", "keyring"}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track time spent on habits and keep your streaks going"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
			"env_db":      constants.EnvDBConnection,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	configDir, err := config.ExpandPath(constants.DefaultConfigDir)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Config != "" && CLI.Config != constants.DefaultConfigFile {
		if path, err := config.ExpandPath(CLI.Config); err == nil {
			configDir = filepath.Dir(path)
		}
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, Level: cfg.LogLevel, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	target, err := config.ResolveDatabase(CLI.DB, cfg)
	if err != nil {
		apperrors.Fatal(err)
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	recorder := sqldb.WithRecorder(metrics.NewCollector(reg))

	var store storage.Provider
	if target.IsPostgres() {
		// the keyring is the one place a password may live
		if _, err := postgres.ValidateConnString(target.DSN); err != nil &&
			!(errors.Is(err, postgres.ErrEmbeddedCredentials) && target.Source == config.SourceKeyring) {
			apperrors.Fatal(err)
		}
		store = postgres.New(target.DSN, recorder)
	} else {
		store = sqlite.NewStore(target.DSN, recorder)
	}
	logger.Debug("Database selected", "source", target.Source, "path", store.GetConfigPath())

	appCtx := &cli.Context{
		Store:    store,
		Tracker:  tracker.New(store, tracker.WithLocation(loc)),
		Config:   cfg,
		Target:   target,
		Registry: reg,
	}

	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		logger.Debug("Command failed", "command", ctx.Command())
		store.Close()
		apperrors.Fatal(err)
	}
}

func needsLoad(command string) bool {
	for _, name := range skipLoad {
		if command == name || strings.HasPrefix(command, name+" ") {
			return false
		}
	}
	return true
}
