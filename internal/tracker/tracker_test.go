package tracker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

// Friday 2024-01-05; its ISO week runs 2024-01-01..2024-01-07
var fixedNow = time.Date(2024, 1, 5, 15, 30, 0, 0, time.UTC)

func setupTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(store, WithLocation(time.UTC), WithClock(func() time.Time { return now }))
}

func mustHabit(t *testing.T, s *Service, name string) models.Habit {
	t.Helper()
	h, err := s.CreateHabit(name, "")
	if err != nil {
		t.Fatalf("CreateHabit(%q) failed: %v", name, err)
	}
	return h
}

func mustLog(t *testing.T, s *Service, habitID int64, date string, minutes int) models.Log {
	t.Helper()
	l, err := s.CreateLog(habitID, date, minutes, "")
	if err != nil {
		t.Fatalf("CreateLog(%d, %s, %d) failed: %v", habitID, date, minutes, err)
	}
	return l
}

func TestRangesFollowClock(t *testing.T) {
	s := setupTestService(t, fixedNow)

	if got := s.TodayString(); got != "2024-01-05" {
		t.Errorf("TodayString() = %s, want 2024-01-05", got)
	}
	if got := s.WeekRange(); got.Start != "2024-01-01" || got.End != "2024-01-07" {
		t.Errorf("WeekRange() = %v", got)
	}
	if got := s.MonthRange(); got.Start != "2024-01-01" || got.End != "2024-01-31" {
		t.Errorf("MonthRange() = %v", got)
	}
}

func TestTodayUsesConfiguredLocation(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	// 20:00 UTC on Jan 5 is already Jan 6 in UTC+9
	s := New(store, WithLocation(tokyo), WithClock(func() time.Time {
		return time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC)
	}))

	if got := s.TodayString(); got != "2024-01-06" {
		t.Errorf("TodayString() = %s, want 2024-01-06", got)
	}
}

func TestCreateHabitNormalizesGoal(t *testing.T) {
	s := setupTestService(t, fixedNow)

	blank, err := s.CreateHabit("Reading", "   ")
	if err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}
	if blank.Goal != nil {
		t.Errorf("blank goal stored as %q, want nil", *blank.Goal)
	}

	withGoal, err := s.CreateHabit("Guitar", "practice scales")
	if err != nil {
		t.Fatalf("CreateHabit() failed: %v", err)
	}
	if withGoal.GoalOrEmpty() != "practice scales" {
		t.Errorf("Goal = %q", withGoal.GoalOrEmpty())
	}
}

func TestCreateLogDefaultsToToday(t *testing.T) {
	s := setupTestService(t, fixedNow)
	h := mustHabit(t, s, "Reading")

	l, err := s.CreateLog(h.ID, "", 20, "  ")
	if err != nil {
		t.Fatalf("CreateLog() failed: %v", err)
	}
	if l.Date != "2024-01-05" {
		t.Errorf("Date = %s, want today", l.Date)
	}
	if l.Note != nil {
		t.Errorf("blank note stored as %q, want nil", *l.Note)
	}
}

func TestCreateLogRejectsNonPositiveMinutes(t *testing.T) {
	s := setupTestService(t, fixedNow)
	h := mustHabit(t, s, "Reading")

	for _, minutes := range []int{0, -10} {
		if _, err := s.CreateLog(h.ID, "2024-01-05", minutes, ""); !errors.Is(err, apperrors.ErrConstraintViolation) {
			t.Errorf("CreateLog(minutes=%d) error = %v, want ErrConstraintViolation", minutes, err)
		}
	}

	logs, err := s.ListLogs(h.ID)
	if err != nil {
		t.Fatalf("ListLogs() failed: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("rejected logs were stored: %+v", logs)
	}
}

func TestCreateHabitRejectsDuplicate(t *testing.T) {
	s := setupTestService(t, fixedNow)
	mustHabit(t, s, "Reading")

	if _, err := s.CreateHabit("Reading", ""); !errors.Is(err, apperrors.ErrConstraintViolation) {
		t.Errorf("duplicate CreateHabit() error = %v, want ErrConstraintViolation", err)
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		now   time.Time
		want  int
	}{
		{
			name:  "three consecutive days ending today",
			dates: []string{"2024-01-03", "2024-01-04", "2024-01-05"},
			now:   fixedNow,
			want:  3,
		},
		{
			name:  "two day gap since last log",
			dates: []string{"2024-01-03", "2024-01-04", "2024-01-05"},
			now:   time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "only yesterday",
			dates: []string{"2024-01-04"},
			now:   fixedNow,
			want:  1,
		},
		{
			name:  "no logs",
			dates: nil,
			now:   fixedNow,
			want:  0,
		},
		{
			name:  "several logs on one day",
			dates: []string{"2024-01-05", "2024-01-05", "2024-01-04"},
			now:   fixedNow,
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestService(t, tt.now)
			h := mustHabit(t, s, "Reading")
			for _, d := range tt.dates {
				mustLog(t, s, h.ID, d, 10)
			}

			got, err := s.CurrentStreak(h.ID)
			if err != nil {
				t.Fatalf("CurrentStreak() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongestStreakAcrossHabits(t *testing.T) {
	t.Run("no habits", func(t *testing.T) {
		s := setupTestService(t, fixedNow)
		got, err := s.LongestStreakAcrossHabits()
		if err != nil || got != nil {
			t.Errorf("LongestStreakAcrossHabits() = %+v, %v; want nil, nil", got, err)
		}
	})

	t.Run("all streaks broken", func(t *testing.T) {
		s := setupTestService(t, fixedNow)
		h := mustHabit(t, s, "Reading")
		mustLog(t, s, h.ID, "2023-12-20", 10)

		got, err := s.LongestStreakAcrossHabits()
		if err != nil || got != nil {
			t.Errorf("LongestStreakAcrossHabits() = %+v, %v; want nil, nil", got, err)
		}
	})

	t.Run("greatest streak wins", func(t *testing.T) {
		s := setupTestService(t, fixedNow)
		reading := mustHabit(t, s, "Reading")
		guitar := mustHabit(t, s, "Guitar")
		for _, d := range []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"} {
			mustLog(t, s, reading.ID, d, 10)
		}
		mustLog(t, s, guitar.ID, "2024-01-05", 10)

		got, err := s.LongestStreakAcrossHabits()
		if err != nil {
			t.Fatalf("LongestStreakAcrossHabits() failed: %v", err)
		}
		if got == nil || got.Habit.ID != reading.ID || got.Streak != 4 {
			t.Errorf("LongestStreakAcrossHabits() = %+v, want Reading with 4", got)
		}
	})

	t.Run("tie goes to first listed habit", func(t *testing.T) {
		s := setupTestService(t, fixedNow)
		older := mustHabit(t, s, "Older")
		newer := mustHabit(t, s, "Newer")
		for _, id := range []int64{older.ID, newer.ID} {
			mustLog(t, s, id, "2024-01-04", 10)
			mustLog(t, s, id, "2024-01-05", 10)
		}

		habits, err := s.ListHabits()
		if err != nil {
			t.Fatalf("ListHabits() failed: %v", err)
		}
		got, err := s.LongestStreakAcrossHabits()
		if err != nil {
			t.Fatalf("LongestStreakAcrossHabits() failed: %v", err)
		}
		if got == nil || got.Habit.ID != habits[0].ID || got.Streak != 2 {
			t.Errorf("LongestStreakAcrossHabits() = %+v, want first listed habit %d", got, habits[0].ID)
		}
		if habits[0].ID != newer.ID {
			t.Errorf("listing order = %d first, want newest habit %d", habits[0].ID, newer.ID)
		}
	})
}

func TestDeleteHabitCascadesLogs(t *testing.T) {
	s := setupTestService(t, fixedNow)
	h := mustHabit(t, s, "Reading")
	l := mustLog(t, s, h.ID, "2024-01-03", 10)

	if err := s.DeleteHabit(h.ID); err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}
	if _, err := s.GetLog(l.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetLog() after habit delete error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteHabit(h.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second DeleteHabit() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateAndDeleteLog(t *testing.T) {
	s := setupTestService(t, fixedNow)
	h := mustHabit(t, s, "Reading")
	l := mustLog(t, s, h.ID, "2024-01-03", 10)

	minutes := 35
	updated, err := s.UpdateLog(l.ID, models.LogPatch{Minutes: &minutes})
	if err != nil {
		t.Fatalf("UpdateLog() failed: %v", err)
	}
	if updated.Minutes != 35 || updated.Date != "2024-01-03" {
		t.Errorf("UpdateLog() = %+v", updated)
	}

	if err := s.DeleteLog(l.ID); err != nil {
		t.Fatalf("DeleteLog() failed: %v", err)
	}
	if err := s.DeleteLog(l.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second DeleteLog() error = %v, want ErrNotFound", err)
	}
}

func TestDashboard(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		s := setupTestService(t, fixedNow)
		d, err := s.Dashboard()
		if err != nil {
			t.Fatalf("Dashboard() failed: %v", err)
		}
		if len(d.Habits) != 0 || d.WeekMinutes != 0 || d.BestHabit != nil || d.LongestStreak != nil || d.LongestLog != nil {
			t.Errorf("Dashboard() on empty store = %+v", d)
		}
	})

	t.Run("populated", func(t *testing.T) {
		s := setupTestService(t, fixedNow)
		reading := mustHabit(t, s, "Reading")
		guitar := mustHabit(t, s, "Guitar")

		mustLog(t, s, reading.ID, "2024-01-03", 20)
		mustLog(t, s, reading.ID, "2024-01-04", 20)
		mustLog(t, s, reading.ID, "2024-01-05", 20)
		mustLog(t, s, guitar.ID, "2024-01-05", 45)
		mustLog(t, s, guitar.ID, "2023-12-31", 300) // previous week

		d, err := s.Dashboard()
		if err != nil {
			t.Fatalf("Dashboard() failed: %v", err)
		}
		if d.Today != "2024-01-05" || d.Week.Start != "2024-01-01" {
			t.Errorf("Dashboard() dates = %s %v", d.Today, d.Week)
		}
		if len(d.Habits) != 2 {
			t.Errorf("Habits = %d, want 2", len(d.Habits))
		}
		if d.WeekMinutes != 105 {
			t.Errorf("WeekMinutes = %d, want 105", d.WeekMinutes)
		}
		if d.BestHabit == nil || d.BestHabit.Habit.ID != reading.ID || d.BestHabit.Minutes != 60 {
			t.Errorf("BestHabit = %+v, want Reading with 60", d.BestHabit)
		}
		if d.LongestStreak == nil || d.LongestStreak.Habit.ID != reading.ID || d.LongestStreak.Streak != 3 {
			t.Errorf("LongestStreak = %+v, want Reading with 3", d.LongestStreak)
		}
		if d.LongestLog == nil || d.LongestLog.Minutes != 45 || d.LongestLog.HabitName != "Guitar" {
			t.Errorf("LongestLog = %+v, want Guitar's 45 minute log", d.LongestLog)
		}
	})
}

func TestHabitDetail(t *testing.T) {
	s := setupTestService(t, fixedNow)
	h := mustHabit(t, s, "Reading")
	mustLog(t, s, h.ID, "2023-12-29", 10) // previous week
	mustLog(t, s, h.ID, "2024-01-04", 15)
	mustLog(t, s, h.ID, "2024-01-05", 25)

	d, err := s.HabitDetail(h.ID)
	if err != nil {
		t.Fatalf("HabitDetail() failed: %v", err)
	}
	if d.Habit.ID != h.ID {
		t.Errorf("Habit = %+v", d.Habit)
	}
	if len(d.WeekLogs) != 2 || d.WeekLogs[0].Date != "2024-01-04" {
		t.Errorf("WeekLogs = %+v", d.WeekLogs)
	}
	if d.WeekMinutes != 40 {
		t.Errorf("WeekMinutes = %d, want 40", d.WeekMinutes)
	}
	if d.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", d.CurrentStreak)
	}

	if _, err := s.HabitDetail(h.ID + 10); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("HabitDetail(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMonthSummary(t *testing.T) {
	s := setupTestService(t, fixedNow)
	reading := mustHabit(t, s, "Reading")
	guitar := mustHabit(t, s, "Guitar")
	mustHabit(t, s, "Idle")

	mustLog(t, s, reading.ID, "2024-01-02", 30)
	mustLog(t, s, guitar.ID, "2024-01-20", 50)
	mustLog(t, s, guitar.ID, "2024-01-31", 10)
	mustLog(t, s, reading.ID, "2024-02-01", 99) // next month

	m, err := s.MonthSummary()
	if err != nil {
		t.Fatalf("MonthSummary() failed: %v", err)
	}
	if m.Month.Start != "2024-01-01" || m.Month.End != "2024-01-31" {
		t.Errorf("Month = %v", m.Month)
	}
	if len(m.Habits) != 3 {
		t.Fatalf("Habits = %d rows, want 3", len(m.Habits))
	}
	if m.TotalMinutes != 90 {
		t.Errorf("TotalMinutes = %d, want 90", m.TotalMinutes)
	}
	if m.BestHabit == nil || m.BestHabit.Habit.ID != guitar.ID || m.BestHabit.Minutes != 60 {
		t.Errorf("BestHabit = %+v, want Guitar with 60", m.BestHabit)
	}
}
