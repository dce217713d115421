package models

import "time"

// DateFormat is the day-granular key format used throughout the store.
const DateFormat = "2006-01-02"

// TitleFormat is the human-readable form a rolled-over entry is titled with.
const TitleFormat = "January 2, 2006"

// Hours tracks time spent on a given day, split by kind.
type Hours struct {
	Job   float64 `json:"job"`
	Class float64 `json:"class"`
}

// Total returns the combined hours for the day.
func (h Hours) Total() float64 {
	return h.Job + h.Class
}

// TodayDraft is the single mutable draft for the current day. It is
// superseded, never deleted: when the day changes, its content moves into a
// JournalEntry and a fresh draft takes its place.
type TodayDraft struct {
	Content string `json:"content"`
	Date    string `json:"date"` // YYYY-MM-DD
	Hours   Hours  `json:"hours"`
}

// NewDraft returns an empty draft for the given day.
func NewDraft(day time.Time) TodayDraft {
	return TodayDraft{
		Content: "",
		Date:    day.Format(DateFormat),
		Hours:   Hours{},
	}
}

// JournalEntry is one archived day. Entries are unique per Date; Date, not
// ID, is the upsert key.
type JournalEntry struct {
	ID      int64  `json:"id"`
	Date    string `json:"date"` // YYYY-MM-DD, unique
	Title   string `json:"title"`
	Content string `json:"content"`
	Hours   Hours  `json:"hours"`
}
