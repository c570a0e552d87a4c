package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// Today returns midnight of the current day in loc.
// "Today" follows the user's configured timezone, not the system one.
func Today(loc *time.Location) time.Time {
	return StartOfDay(time.Now().In(loc))
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDate renders t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD string as midnight UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(constants.DateFormat, s)
}

// AddDays shifts a YYYY-MM-DD date by n calendar days
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// CurrentWeekStart returns the Monday of the ISO week containing today
func CurrentWeekStart(today time.Time) time.Time {
	today = StartOfDay(today)
	// time.Weekday counts from Sunday; shift so Monday is 0
	offset := (int(today.Weekday()) + 6) % 7
	return today.AddDate(0, 0, -offset)
}

// CurrentWeekEnd returns the Sunday closing the ISO week containing today
func CurrentWeekEnd(today time.Time) time.Time {
	return CurrentWeekStart(today).AddDate(0, 0, 6)
}

// CurrentMonthStart returns the first day of today's month
func CurrentMonthStart(today time.Time) time.Time {
	return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
}

// CurrentMonthEnd returns the last day of today's month.
// Day 0 of the following month normalizes to the last day of this one,
// which also carries December into January of the next year.
func CurrentMonthEnd(today time.Time) time.Time {
	return time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location())
}

// WeekRange returns the ISO week containing today as a date range
func WeekRange(today time.Time) models.Range {
	return models.Range{
		Start: FormatDate(CurrentWeekStart(today)),
		End:   FormatDate(CurrentWeekEnd(today)),
	}
}

// MonthRange returns the calendar month containing today as a date range
func MonthRange(today time.Time) models.Range {
	return models.Range{
		Start: FormatDate(CurrentMonthStart(today)),
		End:   FormatDate(CurrentMonthEnd(today)),
	}
}
