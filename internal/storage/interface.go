package storage

import "github.com/daybookhq/daybook/internal/models"

// Provider is the storage contract shared by the JSON-document backend and
// the SQLite backend. Rollover logic lives above this interface so both
// backends observe identical day-boundary behavior.
//
// Providers are not safe for concurrent use; daybook is a single-user,
// single-process tool and the later of two overlapping writes wins.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Draft
	GetDraft() (models.TodayDraft, error)
	SaveDraft(models.TodayDraft) error

	// Journal
	ListEntries() ([]models.JournalEntry, error)
	UpsertEntry(models.JournalEntry) error
	DeleteEntry(id int64) error

	// Notes
	ListNotes() (models.NoteMap, error)
	SaveNote(category models.Category, note models.Note) (models.Note, error)
	DeleteNote(category models.Category, id int64) error
	SaveAttachment(payload []byte, name string, noteID int64) (string, error)

	// Calendar
	GetCalendar() (models.Calendar, error)
	SaveCalendarDay(date string, day models.CalendarDay) error

	// Goals
	ListGoals() ([]models.Goal, error)
	CreateGoal(models.Goal) (models.Goal, error)
	UpdateGoal(models.Goal) error
	AdjustGoalAmount(id int64, delta float64) (models.Goal, error)
	DeleteGoal(id int64) error

	// Utils
	DataPath() string
}
