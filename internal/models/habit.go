package models

import "time"

// Habit represents a tracked activity
type Habit struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Goal      *string   `json:"goal,omitempty"`
	CreatedAt time.Time `json:"created_at"` // assigned by the store, UTC
}

// GoalOrEmpty returns the goal text, or "" when the habit has none
func (h Habit) GoalOrEmpty() string {
	if h.Goal == nil {
		return ""
	}
	return *h.Goal
}

// HabitMinutes pairs a habit with the minutes summed over a range
type HabitMinutes struct {
	Habit   Habit `json:"habit"`
	Minutes int   `json:"minutes"`
}

// HabitStreak pairs a habit with its current consecutive-day streak
type HabitStreak struct {
	Habit  Habit `json:"habit"`
	Streak int   `json:"streak"`
}

// HabitDates holds the distinct logged dates of one habit, most recent first
type HabitDates struct {
	Habit Habit    `json:"habit"`
	Dates []string `json:"dates"`
}
