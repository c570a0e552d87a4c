// Package tracker is the application core: it wraps a storage.Provider with
// the clock and timezone that decide what "today", "this week" and "this
// month" mean, and computes streaks on top of the stored log dates.
package tracker

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/streak"
	"github.com/julianstephens/habitlog/internal/utils"
	"github.com/julianstephens/habitlog/internal/validation"
)

type Option func(*Service)

// WithLocation sets the timezone used to decide the current date
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

type Service struct {
	store storage.Provider
	loc   *time.Location
	now   func() time.Time
}

func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store: store,
		loc:   time.Local,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns midnight of the current date in the service's timezone
func (s *Service) Today() time.Time {
	return utils.StartOfDay(s.now().In(s.loc))
}

// TodayString returns the current date as YYYY-MM-DD
func (s *Service) TodayString() string {
	return utils.FormatDate(s.Today())
}

func (s *Service) WeekRange() models.Range {
	return utils.WeekRange(s.Today())
}

func (s *Service) MonthRange() models.Range {
	return utils.MonthRange(s.Today())
}

// Habits

func (s *Service) ListHabits() ([]models.Habit, error) {
	return s.store.ListHabits()
}

func (s *Service) GetHabit(id int64) (models.Habit, error) {
	return s.store.GetHabit(id)
}

// CreateHabit adds a habit. A blank goal is stored as no goal.
func (s *Service) CreateHabit(name, goal string) (models.Habit, error) {
	h, err := s.store.CreateHabit(name, validation.OptionalText(goal))
	if err != nil {
		return models.Habit{}, err
	}
	logger.Info("Habit created", "id", h.ID, "name", h.Name)
	return h, nil
}

// DeleteHabit removes a habit and every log recorded against it
func (s *Service) DeleteHabit(id int64) error {
	if err := s.store.DeleteHabit(id); err != nil {
		return err
	}
	logger.Info("Habit deleted", "id", id)
	return nil
}

// Logs

func (s *Service) ListLogs(habitID int64) ([]models.Log, error) {
	return s.store.ListLogs(habitID)
}

func (s *Service) GetLog(id int64) (models.Log, error) {
	return s.store.GetLog(id)
}

// CreateLog records a session. A blank date means today and a blank note is
// stored as no note.
func (s *Service) CreateLog(habitID int64, date string, minutes int, note string) (models.Log, error) {
	if date == "" {
		date = s.TodayString()
	}
	l, err := s.store.CreateLog(models.Log{
		HabitID: habitID,
		Date:    date,
		Minutes: minutes,
		Note:    validation.OptionalText(note),
	})
	if err != nil {
		return models.Log{}, err
	}
	logger.Info("Log created", "id", l.ID, "habit_id", habitID, "date", l.Date, "minutes", l.Minutes)
	return l, nil
}

func (s *Service) UpdateLog(id int64, patch models.LogPatch) (models.Log, error) {
	l, err := s.store.UpdateLog(id, patch)
	if err != nil {
		return models.Log{}, err
	}
	logger.Info("Log updated", "id", id)
	return l, nil
}

func (s *Service) DeleteLog(id int64) error {
	if err := s.store.DeleteLog(id); err != nil {
		return err
	}
	logger.Info("Log deleted", "id", id)
	return nil
}

func (s *Service) LogsInRange(r models.Range) ([]models.RangeLog, error) {
	return s.store.LogsInRange(r)
}

func (s *Service) LogsInRangeForHabit(habitID int64, r models.Range) ([]models.Log, error) {
	return s.store.LogsInRangeForHabit(habitID, r)
}

// Aggregates

func (s *Service) MinutesForHabitInRange(habitID int64, r models.Range) (int, error) {
	return s.store.MinutesForHabitInRange(habitID, r)
}

func (s *Service) TotalMinutesInRange(r models.Range) (int, error) {
	return s.store.TotalMinutesInRange(r)
}

func (s *Service) LongestLogInRange(r models.Range) (*models.RangeLog, error) {
	return s.store.LongestLogInRange(r)
}

func (s *Service) BestHabitOfRange(r models.Range) (*models.HabitMinutes, error) {
	return s.store.BestHabitOfRange(r)
}

// Streaks

// CurrentStreak returns the number of consecutive days, ending today or
// yesterday, on which the habit was logged
func (s *Service) CurrentStreak(habitID int64) (int, error) {
	dates, err := s.store.HabitLogDates(habitID)
	if err != nil {
		return 0, err
	}
	n, err := streak.Current(dates, s.Today())
	if err != nil {
		return 0, fmt.Errorf("habit %d: %w", habitID, err)
	}
	return n, nil
}

// LongestStreakAcrossHabits returns the habit with the greatest current
// streak, or nil when no habit has one. On a tie the habit listed first
// (newest) wins.
func (s *Service) LongestStreakAcrossHabits() (*models.HabitStreak, error) {
	all, err := s.store.AllHabitLogDates()
	if err != nil {
		return nil, err
	}
	return streak.Longest(all, s.Today())
}
