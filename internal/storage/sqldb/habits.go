package sqldb

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/validation"
)

const habitColumns = `h.id, h.name, h.goal, h.created_at`

// newest first; equal timestamps fall back to the later id
const habitOrder = `ORDER BY h.created_at DESC, h.id DESC`

type habitRow struct {
	ID        int64   `db:"id"`
	Name      string  `db:"name"`
	Goal      *string `db:"goal"`
	CreatedAt string  `db:"created_at"`
}

func (r habitRow) toModel() (models.Habit, error) {
	createdAt, err := parseCreatedAt(r.CreatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %d: %w", r.ID, err)
	}
	return models.Habit{
		ID:        r.ID,
		Name:      r.Name,
		Goal:      r.Goal,
		CreatedAt: createdAt,
	}, nil
}

func parseCreatedAt(s string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.CreatedAtFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return t, nil
}

func (s *Store) ListHabits() (habits []models.Habit, err error) {
	defer s.observe("list_habits", time.Now(), &err)
	return listHabits(s.db)
}

func listHabits(q sqlx.Queryer) ([]models.Habit, error) {
	var rows []habitRow
	if err := sqlx.Select(q, &rows, `SELECT `+habitColumns+` FROM habits h `+habitOrder); err != nil {
		return nil, err
	}

	habits := make([]models.Habit, 0, len(rows))
	for _, r := range rows {
		h, err := r.toModel()
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, nil
}

func (s *Store) GetHabit(id int64) (habit models.Habit, err error) {
	defer s.observe("get_habit", time.Now(), &err)

	var row habitRow
	err = s.db.Get(&row, s.db.Rebind(`SELECT `+habitColumns+` FROM habits h WHERE h.id = ?`), id)
	if err != nil {
		return models.Habit{}, one(err, "habit", id)
	}
	return row.toModel()
}

func (s *Store) CreateHabit(name string, goal *string) (habit models.Habit, err error) {
	defer s.observe("create_habit", time.Now(), &err)

	name, err = validation.HabitName(name)
	if err != nil {
		return models.Habit{}, err
	}

	row := habitRow{Name: name, Goal: goal}
	err = s.db.QueryRowx(
		s.db.Rebind(`INSERT INTO habits (name, goal) VALUES (?, ?) RETURNING id, created_at`),
		name, goal,
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return models.Habit{}, err
	}
	return row.toModel()
}

func (s *Store) DeleteHabit(id int64) (err error) {
	defer s.observe("delete_habit", time.Now(), &err)

	// logs go with it through ON DELETE CASCADE
	res, err := s.db.Exec(s.db.Rebind(`DELETE FROM habits WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return affected(res, "habit", id)
}
