package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybookhq/daybook/internal/models"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "daybook.db"), nil)
	// Advance one millisecond per call so UnixMilli ids never collide.
	base := time.UnixMilli(1700000000000)
	s.now = func() time.Time {
		base = base.Add(time.Millisecond)
		return base
	}
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteDraftRoundTrip(t *testing.T) {
	s := newSQLiteTestStore(t)

	_, err := s.GetDraft()
	assert.ErrorIs(t, err, ErrNotFound)

	want := models.TodayDraft{Content: "hello", Date: "2026-03-10", Hours: models.Hours{Job: 4, Class: 2}}
	require.NoError(t, s.SaveDraft(want))

	got, err := s.GetDraft()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The draft is a singleton; a second save replaces it.
	want.Content = "rewritten"
	require.NoError(t, s.SaveDraft(want))
	got, err = s.GetDraft()
	require.NoError(t, err)
	assert.Equal(t, "rewritten", got.Content)
}

func TestSQLiteUpsertEntryKeyedByDate(t *testing.T) {
	s := newSQLiteTestStore(t)

	require.NoError(t, s.UpsertEntry(models.JournalEntry{Date: "2026-01-05", Content: "first"}))
	require.NoError(t, s.UpsertEntry(models.JournalEntry{Date: "2026-01-05", Content: "revised"}))
	require.NoError(t, s.UpsertEntry(models.JournalEntry{Date: "2026-01-07", Content: "later"}))

	entries, err := s.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-01-07", entries[0].Date)
	assert.Equal(t, "revised", entries[1].Content)
}

func TestSQLiteNoteLifecycle(t *testing.T) {
	s := newSQLiteTestStore(t)

	note, err := s.SaveNote(models.CategoryWork, models.Note{Title: "standup", Content: "notes"})
	require.NoError(t, err)
	require.NotZero(t, note.ID)
	require.NotEmpty(t, note.CreatedAt)

	rel, err := s.SaveAttachment([]byte("payload"), "agenda.txt", note.ID)
	require.NoError(t, err)
	note.Attachments = []models.Attachment{{Name: "agenda.txt", Path: rel, Type: "text/plain"}}
	_, err = s.SaveNote(models.CategoryWork, note)
	require.NoError(t, err)

	full := filepath.Join(filepath.Dir(s.DataPath()), filepath.FromSlash(rel))
	_, err = os.Stat(full)
	require.NoError(t, err)

	notes, err := s.ListNotes()
	require.NoError(t, err)
	list := notes[models.CategoryWork]
	require.Len(t, list, 1)
	require.Len(t, list[0].Attachments, 1)
	assert.Equal(t, rel, list[0].Attachments[0].Path)

	require.NoError(t, s.DeleteNote(models.CategoryWork, note.ID))

	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))
	notes, err = s.ListNotes()
	require.NoError(t, err)
	assert.Empty(t, notes[models.CategoryWork])
}

func TestSQLiteCalendar(t *testing.T) {
	s := newSQLiteTestStore(t)

	require.NoError(t, s.SaveCalendarDay("2026-02-14", models.CalendarDay{Job: 8}))
	require.NoError(t, s.SaveCalendarDay("2026-02-14", models.CalendarDay{Job: 2, Class: 3}))

	cal, err := s.GetCalendar()
	require.NoError(t, err)
	require.Len(t, cal, 1)
	assert.Equal(t, models.CalendarDay{Job: 2, Class: 3}, cal["2026-02-14"])
}

func TestSQLiteGoalLifecycle(t *testing.T) {
	s := newSQLiteTestStore(t)

	goal, err := s.CreateGoal(models.Goal{Name: "Vacation", TargetAmount: 2000, CurrentAmount: 100})
	require.NoError(t, err)
	require.Len(t, goal.History, 1)

	adjusted, err := s.AdjustGoalAmount(goal.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 150.0, adjusted.CurrentAmount)
	require.Len(t, adjusted.History, 2)
	assert.Equal(t, 150.0, adjusted.History[1].Amount)

	adjusted.Deadline = "2026-12-31"
	require.NoError(t, s.UpdateGoal(adjusted))

	goals, err := s.ListGoals()
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "2026-12-31", goals[0].Deadline)
	assert.Len(t, goals[0].History, 2)

	require.NoError(t, s.DeleteGoal(goal.ID))
	goals, err = s.ListGoals()
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daybook.db")

	s := NewSQLiteStore(path, nil)
	require.NoError(t, s.Init())
	require.NoError(t, s.SaveDraft(models.TodayDraft{Content: "persisted", Date: "2026-03-10"}))
	require.NoError(t, s.Close())

	s2 := NewSQLiteStore(path, nil)
	defer s2.Close()
	draft, err := s2.GetDraft()
	require.NoError(t, err)
	assert.Equal(t, "persisted", draft.Content)
}
