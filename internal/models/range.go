package models

import "fmt"

// Range is an inclusive pair of ISO dates (YYYY-MM-DD).
// Both ends are zero-padded so string comparison orders them correctly.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether date falls within the range
func (r Range) Contains(date string) bool {
	return r.Start <= date && date <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}
