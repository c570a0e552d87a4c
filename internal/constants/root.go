package constants

const (
	AppName            = "habitlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitlog"
	DefaultDBPath      = "~/.config/habitlog/habitlog.db"
	DefaultConfigFile  = "~/.config/habitlog/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// CreatedAtFormat matches SQLite's datetime('now') output
	CreatedAtFormat = "2006-01-02 15:04:05"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitlog-"
	BackupFileSuffix = ".db"

	// Environment variables
	EnvDBConnection = "HABITLOG_DB_CONNECTION"

	// Log levels accepted in config
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	DefaultTimezone = "Local"
	DefaultLogLevel = LogLevelWarn
)
