package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybookhq/daybook/internal/models"
)

func TestValidateGoalCreateCap(t *testing.T) {
	existing := []models.Goal{
		{ID: 1, Name: "a", TargetAmount: 10},
		{ID: 2, Name: "b", TargetAmount: 10},
	}
	goal := models.Goal{Name: "c", TargetAmount: 10}

	assert.NoError(t, ValidateGoalCreate(existing, goal))

	existing = append(existing, models.Goal{ID: 3, Name: "c", TargetAmount: 10})
	err := ValidateGoalCreate(existing, goal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum 3 goals")
}

func TestValidateGoalFields(t *testing.T) {
	cases := []struct {
		name string
		goal models.Goal
		ok   bool
	}{
		{"valid", models.Goal{Name: "fund", TargetAmount: 100}, true},
		{"valid with deadline", models.Goal{Name: "fund", TargetAmount: 100, Deadline: "2026-12-31"}, true},
		{"empty name", models.Goal{Name: "  ", TargetAmount: 100}, false},
		{"zero target", models.Goal{Name: "fund", TargetAmount: 0}, false},
		{"negative current", models.Goal{Name: "fund", TargetAmount: 100, CurrentAmount: -1}, false},
		{"bad deadline", models.Goal{Name: "fund", TargetAmount: 100, Deadline: "soon"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGoal(tc.goal)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateNote(t *testing.T) {
	assert.NoError(t, ValidateNote(models.CategoryIdeas, models.Note{Title: "spark"}))
	assert.Error(t, ValidateNote("finance", models.Note{Title: "spark"}))
	assert.Error(t, ValidateNote(models.CategoryIdeas, models.Note{Title: "   "}))
}

func TestValidateHours(t *testing.T) {
	assert.NoError(t, ValidateHours(models.Hours{Job: 0, Class: 0}))
	assert.NoError(t, ValidateHours(models.Hours{Job: 7.5, Class: 2}))
	assert.Error(t, ValidateHours(models.Hours{Job: -1}))
	assert.Error(t, ValidateHours(models.Hours{Class: -0.5}))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-03-10"))
	assert.False(t, ValidDate("03/10/2026"))
	assert.False(t, ValidDate("2026-13-40"))
	assert.False(t, ValidDate(""))
}

func TestCheckCleanStore(t *testing.T) {
	v := New()
	result := v.Check(StoreView{
		Entries: []models.JournalEntry{
			{ID: 1, Date: "2026-03-09", Hours: models.Hours{Job: 4}},
		},
		Notes:    models.EmptyNoteMap(),
		Calendar: models.Calendar{"2026-03-09": {Job: 4}},
		Goals:    []models.Goal{{ID: 1, Name: "a", TargetAmount: 10}},
	})
	assert.False(t, result.HasConflicts())
	assert.Equal(t, "No conflicts detected.", result.FormatReport())
}

func TestCheckFindsConflicts(t *testing.T) {
	v := New()

	notes := models.EmptyNoteMap()
	notes["finance"] = []models.Note{{ID: 7, Title: "stray"}}
	notes[models.CategoryWork] = []models.Note{{
		ID:    8,
		Title: "report",
		Attachments: []models.Attachment{
			{Name: "q1.pdf", Path: "attachments/8/1_q1.pdf"},
		},
	}}

	result := v.Check(StoreView{
		Entries: []models.JournalEntry{
			{ID: 1, Date: "2026-03-09"},
			{ID: 2, Date: "2026-03-09"},
			{ID: 3, Date: "bogus", Hours: models.Hours{Job: -1}},
		},
		Notes:    notes,
		Calendar: models.Calendar{"not-a-date": {Class: -2}},
		Goals: []models.Goal{
			{ID: 1, Name: "a", TargetAmount: 10},
			{ID: 2, Name: "b", TargetAmount: 10},
			{ID: 3, Name: "c", TargetAmount: 10},
			{ID: 4, Name: "d", TargetAmount: 10},
		},
		HasDocument: func(rel string) bool { return false },
		Attachments: func(dir string) []string { return []string{"8", "999"} },
	})

	require.True(t, result.HasConflicts())
	byType := map[ConflictType]int{}
	for _, c := range result.Conflicts {
		byType[c.Type]++
	}
	assert.Equal(t, 1, byType[ConflictDuplicateEntryDate])
	assert.Equal(t, 2, byType[ConflictInvalidDate], "bad entry date and bad calendar key")
	assert.Equal(t, 2, byType[ConflictNegativeHours], "entry hours and calendar hours")
	assert.Equal(t, 1, byType[ConflictUnknownCategory])
	assert.Equal(t, 1, byType[ConflictMissingAttachment])
	assert.Equal(t, 1, byType[ConflictOrphanedAttachments], "directory 999 has no owning note")
	assert.Equal(t, 1, byType[ConflictGoalCapExceeded])
}
