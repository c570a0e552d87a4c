package models

// Log is a single recorded session against a habit
type Log struct {
	ID      int64   `json:"id" db:"id"`
	HabitID int64   `json:"habit_id" db:"habit_id"`
	Date    string  `json:"date" db:"date"` // YYYY-MM-DD format
	Minutes int     `json:"minutes" db:"minutes"`
	Note    *string `json:"note,omitempty" db:"note"`
}

// NoteOrEmpty returns the note text, or "" when the log has none
func (l Log) NoteOrEmpty() string {
	if l.Note == nil {
		return ""
	}
	return *l.Note
}

// LogPatch describes an edit to a log. Nil fields keep their current value;
// an empty Note clears it.
type LogPatch struct {
	Date    *string
	Minutes *int
	Note    *string
}

// IsEmpty reports whether the patch changes nothing
func (p LogPatch) IsEmpty() bool {
	return p.Date == nil && p.Minutes == nil && p.Note == nil
}

// Apply returns a copy of l with the patch applied
func (p LogPatch) Apply(l Log) Log {
	if p.Date != nil {
		l.Date = *p.Date
	}
	if p.Minutes != nil {
		l.Minutes = *p.Minutes
	}
	if p.Note != nil {
		if *p.Note == "" {
			l.Note = nil
		} else {
			note := *p.Note
			l.Note = &note
		}
	}
	return l
}

// RangeLog is a log joined with the name of the habit it belongs to
type RangeLog struct {
	Log
	HabitName string `json:"habit_name" db:"habit_name"`
}
