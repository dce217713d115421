package models

// CalendarDay holds the tracked hours for one date. Days are keyed by their
// YYYY-MM-DD string inside the calendar document; last write wins per date.
type CalendarDay struct {
	Job   float64 `json:"job"`
	Class float64 `json:"class"`
}

// Total returns the combined hours for the day.
func (d CalendarDay) Total() float64 {
	return d.Job + d.Class
}

// Calendar is the full calendar document.
type Calendar map[string]CalendarDay
