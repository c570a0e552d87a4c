// Package streak computes consecutive-day runs from logged dates.
package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

// Current returns the length of the run of consecutive logged days that ends
// today or yesterday. A streak breaks once a full day is missed: if the most
// recent logged day is before yesterday the result is 0.
//
// dates may be unsorted and contain duplicates. Days after today are ignored.
func Current(dates []string, today time.Time) (int, error) {
	days, err := distinctDescending(dates)
	if err != nil {
		return 0, err
	}

	anchorLimit := dayOf(today)
	for len(days) > 0 && days[0].After(anchorLimit) {
		days = days[1:]
	}
	if len(days) == 0 {
		return 0, nil
	}

	yesterday := anchorLimit.AddDate(0, 0, -1)
	if days[0].Before(yesterday) {
		return 0, nil
	}

	count := 1
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			break
		}
		count++
	}
	return count, nil
}

// Longest picks the habit with the greatest current streak. Candidates are
// scanned in order and a later habit only wins with a strictly greater
// streak, so ties go to the earliest one. Returns nil when no habit has a
// streak above zero.
func Longest(candidates []models.HabitDates, today time.Time) (*models.HabitStreak, error) {
	var best *models.HabitStreak
	for _, c := range candidates {
		n, err := Current(c.Dates, today)
		if err != nil {
			return nil, fmt.Errorf("habit %d: %w", c.Habit.ID, err)
		}
		if n == 0 {
			continue
		}
		if best == nil || n > best.Streak {
			best = &models.HabitStreak{Habit: c.Habit, Streak: n}
		}
	}
	return best, nil
}

// distinctDescending parses dates, drops duplicates and sorts newest first
func distinctDescending(dates []string) ([]time.Time, error) {
	seen := make(map[string]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true

		t, err := utils.ParseDate(d)
		if err != nil {
			return nil, fmt.Errorf("invalid logged date %q: %w", d, err)
		}
		days = append(days, t)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})
	return days, nil
}

// dayOf maps a wall-clock time onto the UTC midnight carrying the same calendar date,
// so it compares directly with parsed log dates
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
