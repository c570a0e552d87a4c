package storage

import "github.com/julianstephens/habitlog/internal/models"

// Provider is the habit/log store. Implementations keep every log attached
// to a live habit and report failures through the sentinels in
// internal/errors.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Ping() error
	// SchemaVersion reports the applied and the newest embedded schema versions
	SchemaVersion() (current, latest int, err error)
	// Migrate applies pending migrations and returns how many ran
	Migrate(logFn func(string)) (int, error)
	CheckIntegrity() (models.IntegrityReport, error)

	// Habits
	ListHabits() ([]models.Habit, error)
	GetHabit(id int64) (models.Habit, error)
	CreateHabit(name string, goal *string) (models.Habit, error)
	// DeleteHabit removes the habit together with all of its logs
	DeleteHabit(id int64) error

	// Logs
	ListLogs(habitID int64) ([]models.Log, error)
	GetLog(id int64) (models.Log, error)
	CreateLog(models.Log) (models.Log, error)
	UpdateLog(id int64, patch models.LogPatch) (models.Log, error)
	DeleteLog(id int64) error
	LogsInRange(r models.Range) ([]models.RangeLog, error)
	LogsInRangeForHabit(habitID int64, r models.Range) ([]models.Log, error)

	// Aggregates. Absent results are nil.
	MinutesForHabitInRange(habitID int64, r models.Range) (int, error)
	TotalMinutesInRange(r models.Range) (int, error)
	LongestLogInRange(r models.Range) (*models.RangeLog, error)
	BestHabitOfRange(r models.Range) (*models.HabitMinutes, error)
	MinutesByHabitInRange(r models.Range) ([]models.HabitMinutes, error)

	// Streak inputs: distinct dates, most recent first
	HabitLogDates(habitID int64) ([]string, error)
	AllHabitLogDates() ([]models.HabitDates, error)

	// Utils
	GetConfigPath() string
}
