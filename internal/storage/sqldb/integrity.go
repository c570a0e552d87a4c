package sqldb

import (
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/validation"
)

// CheckIntegrity looks for logs that slipped past the foreign key, CHECK and
// date format rules, e.g. rows written while foreign keys were off
func (s *Store) CheckIntegrity() (report models.IntegrityReport, err error) {
	defer s.observe("check_integrity", time.Now(), &err)

	if err = s.db.Get(&report.OrphanedLogs, `SELECT COUNT(*) FROM logs l
		LEFT JOIN habits h ON h.id = l.habit_id
		WHERE h.id IS NULL`); err != nil {
		return models.IntegrityReport{}, err
	}
	if err = s.db.Get(&report.BadMinutes, `SELECT COUNT(*) FROM logs WHERE minutes <= 0`); err != nil {
		return models.IntegrityReport{}, err
	}

	rows, err := s.db.Queryx(`SELECT date, COUNT(*) FROM logs GROUP BY date`)
	if err != nil {
		return models.IntegrityReport{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			date  string
			count int
		)
		if err = rows.Scan(&date, &count); err != nil {
			return models.IntegrityReport{}, err
		}
		if validation.Date(date) != nil {
			report.BadDates += count
		}
	}
	if err = rows.Err(); err != nil {
		return models.IntegrityReport{}, err
	}
	return report, nil
}
