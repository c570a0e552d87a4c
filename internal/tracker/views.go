package tracker

import "github.com/julianstephens/habitlog/internal/models"

// Dashboard is the overview across all habits for the current week
type Dashboard struct {
	Today         string
	Week          models.Range
	Habits        []models.Habit
	LongestStreak *models.HabitStreak
	WeekMinutes   int
	BestHabit     *models.HabitMinutes
	LongestLog    *models.RangeLog
}

// HabitDetail is one habit with its activity for the current week
type HabitDetail struct {
	Habit         models.Habit
	Week          models.Range
	WeekLogs      []models.Log
	WeekMinutes   int
	CurrentStreak int
}

// MonthSummary is every habit's minutes for the current calendar month
type MonthSummary struct {
	Month        models.Range
	Habits       []models.HabitMinutes
	TotalMinutes int
	BestHabit    *models.HabitMinutes
}

func (s *Service) Dashboard() (Dashboard, error) {
	week := s.WeekRange()
	d := Dashboard{Today: s.TodayString(), Week: week}

	var err error
	if d.Habits, err = s.store.ListHabits(); err != nil {
		return Dashboard{}, err
	}
	if d.LongestStreak, err = s.LongestStreakAcrossHabits(); err != nil {
		return Dashboard{}, err
	}
	if d.WeekMinutes, err = s.store.TotalMinutesInRange(week); err != nil {
		return Dashboard{}, err
	}
	if d.BestHabit, err = s.store.BestHabitOfRange(week); err != nil {
		return Dashboard{}, err
	}
	if d.LongestLog, err = s.store.LongestLogInRange(week); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

func (s *Service) HabitDetail(id int64) (HabitDetail, error) {
	habit, err := s.store.GetHabit(id)
	if err != nil {
		return HabitDetail{}, err
	}

	week := s.WeekRange()
	d := HabitDetail{Habit: habit, Week: week}
	if d.WeekLogs, err = s.store.LogsInRangeForHabit(id, week); err != nil {
		return HabitDetail{}, err
	}
	if d.WeekMinutes, err = s.store.MinutesForHabitInRange(id, week); err != nil {
		return HabitDetail{}, err
	}
	if d.CurrentStreak, err = s.CurrentStreak(id); err != nil {
		return HabitDetail{}, err
	}
	return d, nil
}

func (s *Service) MonthSummary() (MonthSummary, error) {
	month := s.MonthRange()
	m := MonthSummary{Month: month}

	var err error
	if m.Habits, err = s.store.MinutesByHabitInRange(month); err != nil {
		return MonthSummary{}, err
	}
	for _, h := range m.Habits {
		m.TotalMinutes += h.Minutes
	}
	if m.BestHabit, err = s.store.BestHabitOfRange(month); err != nil {
		return MonthSummary{}, err
	}
	return m, nil
}
