package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/daybookhq/daybook/internal/logger"
	"github.com/daybookhq/daybook/internal/models"
)

// Document names under the base directory.
const (
	DocToday    = "today.json"
	DocJournal  = "journal.json"
	DocNotes    = "notes.json"
	DocCalendar = "calendar.json"
	DocGoals    = "goals.json"

	AttachmentsDir = "attachments"
)

// JSONStore keeps each aggregate as one JSON document behind a Bridge. Every
// mutation is a whole-document read-modify-write; there is no partial update
// at the storage boundary.
type JSONStore struct {
	bridge Bridge
	log    *logger.Logger
	now    func() time.Time
}

func NewJSONStore(bridge Bridge, log *logger.Logger) *JSONStore {
	if log == nil {
		log = logger.Nop()
	}
	return &JSONStore{
		bridge: bridge,
		log:    log,
		now:    time.Now,
	}
}

// Init writes empty defaults for any document that does not exist yet.
func (s *JSONStore) Init() error {
	defaults := []struct {
		name string
		v    any
	}{
		{DocToday, models.NewDraft(s.now())},
		{DocJournal, []models.JournalEntry{}},
		{DocNotes, models.EmptyNoteMap()},
		{DocCalendar, models.Calendar{}},
		{DocGoals, []models.Goal{}},
	}
	for _, d := range defaults {
		if _, err := s.bridge.ReadDocument(d.name); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := s.writeDoc(d.name, d.v); err != nil {
			return err
		}
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) DataPath() string {
	return s.bridge.BaseDirectory()
}

// readDoc unmarshals the named document into out. Absence is returned as
// ErrNotFound so callers can substitute their empty default.
func (s *JSONStore) readDoc(name string, out any) error {
	data, err := s.bridge.ReadDocument(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *JSONStore) writeDoc(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}
	if err := s.bridge.WriteDocument(name, data); err != nil {
		return err
	}
	s.log.Debug().Str("doc", name).Msg("document written")
	return nil
}

func (s *JSONStore) GetDraft() (models.TodayDraft, error) {
	var draft models.TodayDraft
	if err := s.readDoc(DocToday, &draft); err != nil {
		return models.TodayDraft{}, err
	}
	return draft, nil
}

func (s *JSONStore) SaveDraft(draft models.TodayDraft) error {
	return s.writeDoc(DocToday, draft)
}

func (s *JSONStore) ListEntries() ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := s.readDoc(DocJournal, &entries); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.JournalEntry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

// UpsertEntry inserts or updates keyed by Date, not ID: re-saving a date
// overwrites that day's fields rather than duplicating it. The collection is
// kept sorted descending by date.
func (s *JSONStore) UpsertEntry(entry models.JournalEntry) error {
	entries, err := s.ListEntries()
	if err != nil {
		return err
	}

	found := false
	for i := range entries {
		if entries[i].Date == entry.Date {
			entry.ID = entries[i].ID
			entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		if entry.ID == 0 {
			entry.ID = s.newID()
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	return s.writeDoc(DocJournal, entries)
}

func (s *JSONStore) DeleteEntry(id int64) error {
	entries, err := s.ListEntries()
	if err != nil {
		return err
	}
	filtered := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	return s.writeDoc(DocJournal, filtered)
}

func (s *JSONStore) ListNotes() (models.NoteMap, error) {
	notes := models.NoteMap{}
	if err := s.readDoc(DocNotes, &notes); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.EmptyNoteMap(), nil
		}
		return nil, err
	}
	// Older documents may miss categories entirely.
	for _, c := range models.Categories {
		if notes[c] == nil {
			notes[c] = []models.Note{}
		}
	}
	return notes, nil
}

// SaveNote replaces the note in place when its id already exists in the
// category, preserving position; otherwise it assigns a fresh id, stamps
// CreatedAt and appends.
func (s *JSONStore) SaveNote(category models.Category, note models.Note) (models.Note, error) {
	notes, err := s.ListNotes()
	if err != nil {
		return models.Note{}, err
	}

	list := notes[category]
	found := false
	for i := range list {
		if note.ID != 0 && list[i].ID == note.ID {
			list[i] = note
			found = true
			break
		}
	}
	if !found {
		note.ID = s.newID()
		for containsNoteID(list, note.ID) {
			note.ID++
		}
		note.CreatedAt = s.now().Format(time.RFC3339)
		list = append(list, note)
	}
	notes[category] = list

	if err := s.writeDoc(DocNotes, notes); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// DeleteNote removes the note's attachment files before the record itself.
// Attachment cleanup is best effort: a failed file delete is logged and the
// record removal still goes ahead.
func (s *JSONStore) DeleteNote(category models.Category, id int64) error {
	notes, err := s.ListNotes()
	if err != nil {
		return err
	}

	list := notes[category]
	filtered := make([]models.Note, 0, len(list))
	for _, n := range list {
		if n.ID != id {
			filtered = append(filtered, n)
			continue
		}
		for _, att := range n.Attachments {
			if err := s.bridge.DeleteDocument(att.Path); err != nil && !errors.Is(err, ErrNotFound) {
				s.log.Warn().Err(err).Str("path", att.Path).Msg("failed to delete attachment")
			}
		}
	}
	notes[category] = filtered

	return s.writeDoc(DocNotes, notes)
}

// SaveAttachment writes the payload under the note's attachment directory
// with a collision-resistant name and returns the store-relative path for
// embedding in the note's attachment list.
func (s *JSONStore) SaveAttachment(payload []byte, name string, noteID int64) (string, error) {
	rel := path.Join(AttachmentsDir, fmt.Sprintf("%d", noteID), fmt.Sprintf("%d_%s", s.now().UnixMilli(), name))
	if err := s.bridge.WriteDocument(rel, payload); err != nil {
		return "", err
	}
	return rel, nil
}

func (s *JSONStore) GetCalendar() (models.Calendar, error) {
	cal := models.Calendar{}
	if err := s.readDoc(DocCalendar, &cal); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Calendar{}, nil
		}
		return nil, err
	}
	return cal, nil
}

// SaveCalendarDay sets the single date key; no merge with prior values.
func (s *JSONStore) SaveCalendarDay(date string, day models.CalendarDay) error {
	cal, err := s.GetCalendar()
	if err != nil {
		return err
	}
	cal[date] = day
	return s.writeDoc(DocCalendar, cal)
}

func (s *JSONStore) ListGoals() ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.readDoc(DocGoals, &goals); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.Goal{}, nil
		}
		return nil, err
	}
	return goals, nil
}

// CreateGoal appends unconditionally with a fresh id and a seed history
// entry at the initial amount. The three-goal cap is the caller's rule, not
// the store's.
func (s *JSONStore) CreateGoal(goal models.Goal) (models.Goal, error) {
	goals, err := s.ListGoals()
	if err != nil {
		return models.Goal{}, err
	}

	goal.ID = s.newID()
	for containsGoalID(goals, goal.ID) {
		goal.ID++
	}
	now := s.now().Format(time.RFC3339)
	goal.CreatedAt = now
	goal.History = []models.GoalProgress{{Date: now, Amount: goal.CurrentAmount}}
	goals = append(goals, goal)

	if err := s.writeDoc(DocGoals, goals); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

func (s *JSONStore) UpdateGoal(goal models.Goal) error {
	goals, err := s.ListGoals()
	if err != nil {
		return err
	}
	for i := range goals {
		if goals[i].ID == goal.ID {
			goals[i] = goal
			return s.writeDoc(DocGoals, goals)
		}
	}
	return fmt.Errorf("goal not found: %d", goal.ID)
}

// AdjustGoalAmount adds delta to the goal's current amount and appends a
// history entry holding the new amount.
func (s *JSONStore) AdjustGoalAmount(id int64, delta float64) (models.Goal, error) {
	goals, err := s.ListGoals()
	if err != nil {
		return models.Goal{}, err
	}
	for i := range goals {
		if goals[i].ID != id {
			continue
		}
		goals[i].CurrentAmount += delta
		goals[i].History = append(goals[i].History, models.GoalProgress{
			Date:   s.now().Format(time.RFC3339),
			Amount: goals[i].CurrentAmount,
		})
		if err := s.writeDoc(DocGoals, goals); err != nil {
			return models.Goal{}, err
		}
		return goals[i], nil
	}
	return models.Goal{}, fmt.Errorf("goal not found: %d", id)
}

func (s *JSONStore) DeleteGoal(id int64) error {
	goals, err := s.ListGoals()
	if err != nil {
		return err
	}
	filtered := goals[:0]
	for _, g := range goals {
		if g.ID != id {
			filtered = append(filtered, g)
		}
	}
	return s.writeDoc(DocGoals, filtered)
}

func (s *JSONStore) newID() int64 {
	return s.now().UnixMilli()
}

func containsNoteID(list []models.Note, id int64) bool {
	for _, n := range list {
		if n.ID == id {
			return true
		}
	}
	return false
}

func containsGoalID(list []models.Goal, id int64) bool {
	for _, g := range list {
		if g.ID == id {
			return true
		}
	}
	return false
}
