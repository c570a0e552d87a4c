package sqldb

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/validation"
)

const logColumns = `l.id, l.habit_id, l.date, l.minutes, l.note`

const rangeLogSelect = `SELECT ` + logColumns + `, h.name AS habit_name
	FROM logs l JOIN habits h ON h.id = l.habit_id`

func (s *Store) ListLogs(habitID int64) (logs []models.Log, err error) {
	defer s.observe("list_logs", time.Now(), &err)

	logs = []models.Log{}
	err = s.db.Select(&logs, s.db.Rebind(`SELECT `+logColumns+` FROM logs l
		WHERE l.habit_id = ?
		ORDER BY l.date ASC, l.id ASC`), habitID)
	return logs, err
}

func (s *Store) GetLog(id int64) (log models.Log, err error) {
	defer s.observe("get_log", time.Now(), &err)
	return getLog(s.db, id)
}

func getLog(q sqlx.Ext, id int64) (models.Log, error) {
	var l models.Log
	err := sqlx.Get(q, &l, q.Rebind(`SELECT `+logColumns+` FROM logs l WHERE l.id = ?`), id)
	if err != nil {
		return models.Log{}, one(err, "log", id)
	}
	return l, nil
}

func (s *Store) CreateLog(l models.Log) (created models.Log, err error) {
	defer s.observe("create_log", time.Now(), &err)

	if err := validation.Log(l); err != nil {
		return models.Log{}, err
	}

	// a missing habit surfaces as a foreign key violation
	err = s.db.QueryRowx(
		s.db.Rebind(`INSERT INTO logs (habit_id, date, minutes, note) VALUES (?, ?, ?, ?) RETURNING id`),
		l.HabitID, l.Date, l.Minutes, l.Note,
	).Scan(&l.ID)
	if err != nil {
		return models.Log{}, err
	}
	return l, nil
}

// UpdateLog applies patch to the log in a single transaction. Fields left nil
// in the patch keep their stored value.
func (s *Store) UpdateLog(id int64, patch models.LogPatch) (updated models.Log, err error) {
	defer s.observe("update_log", time.Now(), &err)

	err = s.withTx(func(tx *sqlx.Tx) error {
		current, err := getLog(tx, id)
		if err != nil {
			return err
		}
		updated = patch.Apply(current)
		if patch.IsEmpty() {
			return nil
		}
		if err := validation.Log(updated); err != nil {
			return err
		}

		res, err := tx.Exec(tx.Rebind(`UPDATE logs SET date = ?, minutes = ?, note = ? WHERE id = ?`),
			updated.Date, updated.Minutes, updated.Note, id)
		if err != nil {
			return err
		}
		return affected(res, "log", id)
	})
	if err != nil {
		return models.Log{}, err
	}
	return updated, nil
}

func (s *Store) DeleteLog(id int64) (err error) {
	defer s.observe("delete_log", time.Now(), &err)

	res, err := s.db.Exec(s.db.Rebind(`DELETE FROM logs WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return affected(res, "log", id)
}

func (s *Store) LogsInRange(r models.Range) (logs []models.RangeLog, err error) {
	defer s.observe("logs_in_range", time.Now(), &err)

	if err := validation.Range(r); err != nil {
		return nil, err
	}
	logs = []models.RangeLog{}
	err = s.db.Select(&logs, s.db.Rebind(rangeLogSelect+`
		WHERE l.date BETWEEN ? AND ?
		ORDER BY l.date ASC, l.id ASC`), r.Start, r.End)
	return logs, err
}

func (s *Store) LogsInRangeForHabit(habitID int64, r models.Range) (logs []models.Log, err error) {
	defer s.observe("logs_in_range_for_habit", time.Now(), &err)

	if err := validation.Range(r); err != nil {
		return nil, err
	}
	logs = []models.Log{}
	err = s.db.Select(&logs, s.db.Rebind(`SELECT `+logColumns+` FROM logs l
		WHERE l.habit_id = ? AND l.date BETWEEN ? AND ?
		ORDER BY l.date ASC, l.id ASC`), habitID, r.Start, r.End)
	return logs, err
}

// HabitLogDates returns the distinct dates a habit was logged on, most recent first
func (s *Store) HabitLogDates(habitID int64) (dates []string, err error) {
	defer s.observe("habit_log_dates", time.Now(), &err)

	dates = []string{}
	err = s.db.Select(&dates, s.db.Rebind(`SELECT DISTINCT date FROM logs
		WHERE habit_id = ?
		ORDER BY date DESC`), habitID)
	return dates, err
}

// AllHabitLogDates returns every habit in listing order with its distinct
// logged dates. Both reads share one transaction so a concurrent write cannot
// pair a habit with another snapshot's dates.
func (s *Store) AllHabitLogDates() (result []models.HabitDates, err error) {
	defer s.observe("all_habit_log_dates", time.Now(), &err)

	err = s.withTx(func(tx *sqlx.Tx) error {
		habits, err := listHabits(tx)
		if err != nil {
			return err
		}

		var rows []struct {
			HabitID int64  `db:"habit_id"`
			Date    string `db:"date"`
		}
		if err := tx.Select(&rows, `SELECT DISTINCT habit_id, date FROM logs ORDER BY habit_id, date DESC`); err != nil {
			return err
		}

		byHabit := make(map[int64][]string, len(habits))
		for _, r := range rows {
			byHabit[r.HabitID] = append(byHabit[r.HabitID], r.Date)
		}

		result = make([]models.HabitDates, 0, len(habits))
		for _, h := range habits {
			dates := byHabit[h.ID]
			if dates == nil {
				dates = []string{}
			}
			result = append(result, models.HabitDates{Habit: h, Dates: dates})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

