package validation

import (
	"strings"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

// HabitName checks that a habit name is non-blank and returns it trimmed
func HabitName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.Constraint("habit name cannot be empty")
	}
	return name, nil
}

// Date checks that s is a real calendar date in zero-padded YYYY-MM-DD form.
// Range queries compare dates as strings, so anything else would sort wrongly.
func Date(s string) error {
	t, err := utils.ParseDate(s)
	if err != nil || utils.FormatDate(t) != s {
		return apperrors.Constraint("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return nil
}

// Minutes checks that a session length is strictly positive
func Minutes(m int) error {
	if m <= 0 {
		return apperrors.Constraint("minutes must be greater than 0, got %d", m)
	}
	return nil
}

// Log checks every field of a log that is about to be written
func Log(l models.Log) error {
	if l.HabitID <= 0 {
		return apperrors.Constraint("invalid habit id %d", l.HabitID)
	}
	if err := Date(l.Date); err != nil {
		return err
	}
	return Minutes(l.Minutes)
}

// Range checks both ends of a range and that they are ordered
func Range(r models.Range) error {
	if err := Date(r.Start); err != nil {
		return err
	}
	if err := Date(r.End); err != nil {
		return err
	}
	if r.Start > r.End {
		return apperrors.Constraint("range start %s is after end %s", r.Start, r.End)
	}
	return nil
}

// OptionalText turns blank input into nil so it is stored as NULL
func OptionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
