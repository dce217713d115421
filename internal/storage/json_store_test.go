package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybookhq/daybook/internal/models"
)

func newTestStore(t *testing.T) (*JSONStore, *MemBridge) {
	t.Helper()
	bridge := NewMemBridge()
	return NewJSONStore(bridge, nil), bridge
}

func TestInitWritesDefaultsOnce(t *testing.T) {
	s, bridge := newTestStore(t)

	require.NoError(t, s.Init())
	for _, doc := range []string{DocToday, DocJournal, DocNotes, DocCalendar, DocGoals} {
		assert.True(t, bridge.Has(doc), doc)
	}

	// A second Init must not clobber existing documents.
	require.NoError(t, s.SaveDraft(models.TodayDraft{Content: "keep me", Date: "2026-01-05"}))
	require.NoError(t, s.Init())

	draft, err := s.GetDraft()
	require.NoError(t, err)
	assert.Equal(t, "keep me", draft.Content)
}

func TestGetDraftMissing(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.GetDraft()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertEntryKeyedByDate(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.UpsertEntry(models.JournalEntry{
		Date: "2026-01-05", Title: "January 5, 2026", Content: "first",
	}))
	entries, err := s.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	originalID := entries[0].ID
	require.NotZero(t, originalID)

	// Re-saving the same date overwrites, keeps the id and never duplicates.
	require.NoError(t, s.UpsertEntry(models.JournalEntry{
		Date: "2026-01-05", Title: "January 5, 2026", Content: "revised",
		Hours: models.Hours{Job: 3},
	}))
	entries, err = s.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, originalID, entries[0].ID)
	assert.Equal(t, "revised", entries[0].Content)
	assert.Equal(t, 3.0, entries[0].Hours.Job)
}

func TestEntriesSortedNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)

	for _, date := range []string{"2026-01-03", "2026-01-07", "2026-01-05"} {
		require.NoError(t, s.UpsertEntry(models.JournalEntry{Date: date, Content: date}))
	}

	entries, err := s.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2026-01-07", entries[0].Date)
	assert.Equal(t, "2026-01-05", entries[1].Date)
	assert.Equal(t, "2026-01-03", entries[2].Date)
}

func TestDeleteEntry(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.UpsertEntry(models.JournalEntry{ID: 100, Date: "2026-01-03"}))
	require.NoError(t, s.UpsertEntry(models.JournalEntry{ID: 200, Date: "2026-01-04"}))

	require.NoError(t, s.DeleteEntry(100))

	entries, err := s.ListEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(200), entries[0].ID)
}

func TestSaveNoteAssignsUniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)
	// A frozen clock forces the id collision path.
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	first, err := s.SaveNote(models.CategoryWork, models.Note{Title: "one"})
	require.NoError(t, err)
	second, err := s.SaveNote(models.CategoryWork, models.Note{Title: "two"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEmpty(t, first.CreatedAt)

	// The same id may recur in a different category.
	other, err := s.SaveNote(models.CategoryIdeas, models.Note{Title: "three"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, other.ID)
}

func TestSaveNoteReplacesInPlace(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.SaveNote(models.CategoryPersonal, models.Note{Title: "a"})
	require.NoError(t, err)
	_, err = s.SaveNote(models.CategoryPersonal, models.Note{Title: "b"})
	require.NoError(t, err)

	a.Title = "a edited"
	_, err = s.SaveNote(models.CategoryPersonal, a)
	require.NoError(t, err)

	notes, err := s.ListNotes()
	require.NoError(t, err)
	list := notes[models.CategoryPersonal]
	require.Len(t, list, 2)
	// Position preserved.
	assert.Equal(t, "a edited", list[0].Title)
	assert.Equal(t, "b", list[1].Title)
}

func TestDeleteNoteCascadesAttachments(t *testing.T) {
	s, bridge := newTestStore(t)

	note, err := s.SaveNote(models.CategorySchool, models.Note{Title: "thesis"})
	require.NoError(t, err)

	p1, err := s.SaveAttachment([]byte("pdf"), "draft.pdf", note.ID)
	require.NoError(t, err)
	p2, err := s.SaveAttachment([]byte("png"), "figure.png", note.ID)
	require.NoError(t, err)
	note.Attachments = []models.Attachment{
		{Name: "draft.pdf", Path: p1, Type: "application/pdf"},
		{Name: "figure.png", Path: p2, Type: "image/png"},
	}
	_, err = s.SaveNote(models.CategorySchool, note)
	require.NoError(t, err)

	require.NoError(t, s.DeleteNote(models.CategorySchool, note.ID))

	assert.Contains(t, bridge.Deleted, p1)
	assert.Contains(t, bridge.Deleted, p2)
	assert.False(t, bridge.Has(p1))
	assert.False(t, bridge.Has(p2))

	notes, err := s.ListNotes()
	require.NoError(t, err)
	assert.Empty(t, notes[models.CategorySchool])
}

func TestDeleteNoteSurvivesAttachmentFailure(t *testing.T) {
	s, bridge := newTestStore(t)

	note, err := s.SaveNote(models.CategoryRandom, models.Note{Title: "clip"})
	require.NoError(t, err)
	p, err := s.SaveAttachment([]byte("data"), "clip.mp4", note.ID)
	require.NoError(t, err)
	note.Attachments = []models.Attachment{{Name: "clip.mp4", Path: p, Type: "video/mp4"}}
	_, err = s.SaveNote(models.CategoryRandom, note)
	require.NoError(t, err)

	bridge.FailDel = map[string]error{p: errors.New("disk on fire")}

	// Payload cleanup is best effort; the record removal still happens.
	require.NoError(t, s.DeleteNote(models.CategoryRandom, note.ID))

	notes, err := s.ListNotes()
	require.NoError(t, err)
	assert.Empty(t, notes[models.CategoryRandom])
}

func TestSaveAttachmentPathLayout(t *testing.T) {
	s, bridge := newTestStore(t)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	rel, err := s.SaveAttachment([]byte("payload"), "report.pdf", 42)
	require.NoError(t, err)
	assert.Equal(t, "attachments/42/1700000000000_report.pdf", rel)
	assert.True(t, bridge.Has(rel))
}

func TestCalendarDayOverwrite(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.SaveCalendarDay("2026-02-14", models.CalendarDay{Job: 8, Class: 0}))
	require.NoError(t, s.SaveCalendarDay("2026-02-14", models.CalendarDay{Job: 2, Class: 3}))
	require.NoError(t, s.SaveCalendarDay("2026-02-15", models.CalendarDay{Job: 1}))

	cal, err := s.GetCalendar()
	require.NoError(t, err)
	require.Len(t, cal, 2)
	assert.Equal(t, models.CalendarDay{Job: 2, Class: 3}, cal["2026-02-14"])
	assert.Equal(t, 5.0, cal["2026-02-14"].Total())
}

func TestGoalLifecycle(t *testing.T) {
	s, _ := newTestStore(t)

	goal, err := s.CreateGoal(models.Goal{Name: "Emergency fund", TargetAmount: 1000, CurrentAmount: 100})
	require.NoError(t, err)
	require.NotZero(t, goal.ID)
	require.Len(t, goal.History, 1)
	assert.Equal(t, 100.0, goal.History[0].Amount)

	adjusted, err := s.AdjustGoalAmount(goal.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 150.0, adjusted.CurrentAmount)
	require.Len(t, adjusted.History, 2)
	assert.Equal(t, 150.0, adjusted.History[1].Amount)

	adjusted.Name = "Rainy day fund"
	require.NoError(t, s.UpdateGoal(adjusted))
	goals, err := s.ListGoals()
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Rainy day fund", goals[0].Name)

	require.NoError(t, s.DeleteGoal(goal.ID))
	goals, err = s.ListGoals()
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestAdjustUnknownGoal(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.AdjustGoalAmount(999, 10)
	assert.Error(t, err)
}

func TestCreateGoalDoesNotEnforceCap(t *testing.T) {
	s, _ := newTestStore(t)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	// The store appends unconditionally; the cap lives with callers.
	for i := 0; i < models.MaxGoals+1; i++ {
		_, err := s.CreateGoal(models.Goal{Name: "g", TargetAmount: 10})
		require.NoError(t, err)
	}
	goals, err := s.ListGoals()
	require.NoError(t, err)
	assert.Len(t, goals, models.MaxGoals+1)

	// Collision bump keeps ids unique even under a frozen clock.
	seen := map[int64]bool{}
	for _, g := range goals {
		assert.False(t, seen[g.ID])
		seen[g.ID] = true
	}
}
