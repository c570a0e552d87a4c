// Package config loads habitlog settings from an optional YAML file and the
// environment, and decides which database a command should open.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/keyring"
	"github.com/julianstephens/habitlog/internal/logger"
)

type Config struct {
	Database string `yaml:"database" env:"HABITLOG_DATABASE" env-default:"~/.config/habitlog/habitlog.db" env-description:"SQLite file path or PostgreSQL connection string"`
	Timezone string `yaml:"timezone" env:"HABITLOG_TIMEZONE" env-default:"Local" env-description:"IANA timezone that decides the current date"`
	LogLevel string `yaml:"log_level" env:"HABITLOG_LOG_LEVEL" env-default:"warn" env-description:"debug, info, warn or error"`
	Debug    bool   `yaml:"debug" env:"HABITLOG_DEBUG" env-description:"Also log to stderr at debug level"`
}

// Load reads path when it exists and the environment either way. Environment
// variables override file values. An empty path means the default location.
func Load(path string) (Config, error) {
	if path == "" {
		path = constants.DefaultConfigFile
	}
	path, err := ExpandPath(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
		}
		// no file: env and defaults only
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
	}

	switch cfg.LogLevel {
	case constants.LogLevelDebug, constants.LogLevelInfo, constants.LogLevelWarn, constants.LogLevelError:
	default:
		return Config{}, fmt.Errorf("invalid log_level %q (expected debug, info, warn or error)", cfg.LogLevel)
	}
	return cfg, nil
}

// Usage describes the supported environment variables
func Usage() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Database sources, in precedence order
const (
	SourceFlag    = "flag"
	SourceEnv     = "env"
	SourceKeyring = "keyring"
	SourceConfig  = "config"
)

// Target is the database a command should open
type Target struct {
	DSN    string
	Source string
}

// IsPostgres reports whether DSN is a PostgreSQL URL or key=value DSN
func (t Target) IsPostgres() bool {
	return IsPostgresDSN(t.DSN)
}

func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// ResolveDatabase picks the database from, in order: the --db flag,
// HABITLOG_DB_CONNECTION, the OS keyring, then cfg.Database (which carries
// the default SQLite path when nothing else set it). SQLite paths get ~
// expanded.
func ResolveDatabase(flag string, cfg Config) (Target, error) {
	t := pickDatabase(flag, cfg)
	if t.IsPostgres() {
		return t, nil
	}

	path, err := ExpandPath(t.DSN)
	if err != nil {
		return Target{}, err
	}
	t.DSN = path
	return t, nil
}

func pickDatabase(flag string, cfg Config) Target {
	if flag != "" {
		return Target{DSN: flag, Source: SourceFlag}
	}
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		return Target{DSN: env, Source: SourceEnv}
	}

	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil && connStr != "":
		return Target{DSN: connStr, Source: SourceKeyring}
	case err != nil && !errors.Is(err, keyring.ErrNotFound):
		logger.Debug("Keyring lookup skipped", "error", err)
	}

	dsn := cfg.Database
	if dsn == "" {
		dsn = constants.DefaultDBPath
	}
	return Target{DSN: dsn, Source: SourceConfig}
}
