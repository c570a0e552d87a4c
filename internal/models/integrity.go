package models

// IntegrityReport counts rows that the schema or validation should have kept
// out of the store
type IntegrityReport struct {
	OrphanedLogs int `json:"orphaned_logs"`
	BadDates     int `json:"bad_dates"`
	BadMinutes   int `json:"bad_minutes"`
}

// OK reports whether nothing was found
func (r IntegrityReport) OK() bool {
	return r.OrphanedLogs == 0 && r.BadDates == 0 && r.BadMinutes == 0
}
