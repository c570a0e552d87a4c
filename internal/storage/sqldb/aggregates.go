package sqldb

import (
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/validation"
)

// Range bounds are inclusive and compared as ISO date strings.

func (s *Store) MinutesForHabitInRange(habitID int64, r models.Range) (total int, err error) {
	defer s.observe("minutes_for_habit_in_range", time.Now(), &err)

	if err := validation.Range(r); err != nil {
		return 0, err
	}
	err = s.db.Get(&total, s.db.Rebind(`SELECT COALESCE(SUM(minutes), 0) FROM logs
		WHERE habit_id = ? AND date BETWEEN ? AND ?`), habitID, r.Start, r.End)
	return total, err
}

func (s *Store) TotalMinutesInRange(r models.Range) (total int, err error) {
	defer s.observe("total_minutes_in_range", time.Now(), &err)

	if err := validation.Range(r); err != nil {
		return 0, err
	}
	err = s.db.Get(&total, s.db.Rebind(`SELECT COALESCE(SUM(minutes), 0) FROM logs
		WHERE date BETWEEN ? AND ?`), r.Start, r.End)
	return total, err
}

// LongestLogInRange returns the single longest log in the range, or nil when
// the range has no logs. Equal lengths go to the lowest log id.
func (s *Store) LongestLogInRange(r models.Range) (longest *models.RangeLog, err error) {
	defer s.observe("longest_log_in_range", time.Now(), &err)

	if err := validation.Range(r); err != nil {
		return nil, err
	}

	var l models.RangeLog
	err = s.db.Get(&l, s.db.Rebind(rangeLogSelect+`
		WHERE l.date BETWEEN ? AND ?
		ORDER BY l.minutes DESC, l.id ASC
		LIMIT 1`), r.Start, r.End)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

type habitTotalRow struct {
	habitRow
	Total int `db:"total"`
}

func (r habitTotalRow) toModel() (models.HabitMinutes, error) {
	h, err := r.habitRow.toModel()
	if err != nil {
		return models.HabitMinutes{}, err
	}
	return models.HabitMinutes{Habit: h, Minutes: r.Total}, nil
}

// BestHabitOfRange returns the habit with the most minutes logged in the
// range, or nil when nothing was logged. Equal totals go to the lowest habit id.
func (s *Store) BestHabitOfRange(r models.Range) (best *models.HabitMinutes, err error) {
	defer s.observe("best_habit_of_range", time.Now(), &err)

	if err := validation.Range(r); err != nil {
		return nil, err
	}

	var row habitTotalRow
	err = s.db.Get(&row, s.db.Rebind(`SELECT `+habitColumns+`, SUM(l.minutes) AS total
		FROM logs l JOIN habits h ON h.id = l.habit_id
		WHERE l.date BETWEEN ? AND ?
		GROUP BY h.id, h.name, h.goal, h.created_at
		ORDER BY total DESC, h.id ASC
		LIMIT 1`), r.Start, r.End)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	hm, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &hm, nil
}

// MinutesByHabitInRange returns every habit in listing order with its minutes
// in the range, including habits with nothing logged.
func (s *Store) MinutesByHabitInRange(r models.Range) (totals []models.HabitMinutes, err error) {
	defer s.observe("minutes_by_habit_in_range", time.Now(), &err)

	if err := validation.Range(r); err != nil {
		return nil, err
	}

	var rows []habitTotalRow
	err = s.db.Select(&rows, s.db.Rebind(`SELECT `+habitColumns+`, COALESCE(SUM(l.minutes), 0) AS total
		FROM habits h LEFT JOIN logs l ON l.habit_id = h.id AND l.date BETWEEN ? AND ?
		GROUP BY h.id, h.name, h.goal, h.created_at
		`+habitOrder), r.Start, r.End)
	if err != nil {
		return nil, err
	}

	totals = make([]models.HabitMinutes, 0, len(rows))
	for _, row := range rows {
		hm, err := row.toModel()
		if err != nil {
			return nil, err
		}
		totals = append(totals, hm)
	}
	return totals, nil
}
