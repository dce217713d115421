package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/daybookhq/daybook/internal/logger"
	"github.com/daybookhq/daybook/internal/models"
)

// SQLiteStore is the embedded-database backend. It keeps the same observable
// behavior as JSONStore; attachment payloads stay on disk next to the
// database file so the attachment path contract is identical across
// backends.
type SQLiteStore struct {
	path string
	db   *sql.DB
	log  *logger.Logger
	now  func() time.Time
}

func NewSQLiteStore(path string, log *logger.Logger) *SQLiteStore {
	if log == nil {
		log = logger.Nop()
	}
	return &SQLiteStore{
		path: path,
		log:  log,
		now:  time.Now,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS draft (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	content TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL,
	job REAL NOT NULL DEFAULT 0,
	class REAL NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS journal (
	id INTEGER PRIMARY KEY,
	date TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	job REAL NOT NULL DEFAULT 0,
	class REAL NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS notes (
	category TEXT NOT NULL,
	id INTEGER NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL,
	PRIMARY KEY (category, id)
);
CREATE TABLE IF NOT EXISTS attachments (
	id TEXT PRIMARY KEY,
	category TEXT NOT NULL,
	note_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	path TEXT NOT NULL,
	mime TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS calendar (
	date TEXT PRIMARY KEY,
	job REAL NOT NULL DEFAULT 0,
	class REAL NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS goals (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	target REAL NOT NULL,
	current REAL NOT NULL DEFAULT 0,
	deadline TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS goal_history (
	id TEXT PRIMARY KEY,
	goal_id INTEGER NOT NULL,
	date TEXT NOT NULL,
	amount REAL NOT NULL,
	position INTEGER NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return s.openAndMigrate()
}

func (s *SQLiteStore) openAndMigrate() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) open() error {
	return s.openAndMigrate()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) DataPath() string {
	return s.path
}

// attachmentRoot is where payloads live for this backend: a sibling
// directory of the database file.
func (s *SQLiteStore) attachmentRoot() string {
	return filepath.Dir(s.path)
}

func (s *SQLiteStore) GetDraft() (models.TodayDraft, error) {
	if err := s.open(); err != nil {
		return models.TodayDraft{}, err
	}
	var d models.TodayDraft
	row := s.db.QueryRow(`SELECT content, date, job, class FROM draft WHERE id = 1`)
	if err := row.Scan(&d.Content, &d.Date, &d.Hours.Job, &d.Hours.Class); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TodayDraft{}, ErrNotFound
		}
		return models.TodayDraft{}, fmt.Errorf("failed to load draft: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) SaveDraft(d models.TodayDraft) error {
	if err := s.open(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO draft (id, content, date, job, class) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET content = excluded.content, date = excluded.date,
			job = excluded.job, class = excluded.class`,
		d.Content, d.Date, d.Hours.Job, d.Hours.Class)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListEntries() ([]models.JournalEntry, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id, date, title, content, job, class FROM journal ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.Title, &e.Content, &e.Hours.Job, &e.Hours.Class); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) UpsertEntry(entry models.JournalEntry) error {
	if err := s.open(); err != nil {
		return err
	}
	if entry.ID == 0 {
		entry.ID = s.now().UnixMilli()
	}
	_, err := s.db.Exec(`
		INSERT INTO journal (id, date, title, content, job, class) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET title = excluded.title, content = excluded.content,
			job = excluded.job, class = excluded.class`,
		entry.ID, entry.Date, entry.Title, entry.Content, entry.Hours.Job, entry.Hours.Class)
	if err != nil {
		return fmt.Errorf("failed to upsert journal entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteEntry(id int64) error {
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM journal WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListNotes() (models.NoteMap, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	notes := models.EmptyNoteMap()

	rows, err := s.db.Query(`SELECT category, id, title, content, created_at, updated_at FROM notes ORDER BY category, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var n models.Note
		if err := rows.Scan(&cat, &n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes[models.Category(cat)] = append(notes[models.Category(cat)], n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	atts, err := s.db.Query(`SELECT category, note_id, name, path, mime FROM attachments ORDER BY category, note_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer atts.Close()
	for atts.Next() {
		var cat string
		var noteID int64
		var a models.Attachment
		if err := atts.Scan(&cat, &noteID, &a.Name, &a.Path, &a.Type); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		list := notes[models.Category(cat)]
		for i := range list {
			if list[i].ID == noteID {
				list[i].Attachments = append(list[i].Attachments, a)
				break
			}
		}
	}
	return notes, atts.Err()
}

func (s *SQLiteStore) SaveNote(category models.Category, note models.Note) (models.Note, error) {
	if err := s.open(); err != nil {
		return models.Note{}, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists := false
	if note.ID != 0 {
		row := tx.QueryRow(`SELECT COUNT(1) FROM notes WHERE category = ? AND id = ?`, string(category), note.ID)
		var n int
		if err := row.Scan(&n); err != nil {
			return models.Note{}, fmt.Errorf("failed to look up note: %w", err)
		}
		exists = n > 0
	}

	if exists {
		_, err = tx.Exec(`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE category = ? AND id = ?`,
			note.Title, note.Content, note.UpdatedAt, string(category), note.ID)
		if err != nil {
			return models.Note{}, fmt.Errorf("failed to update note: %w", err)
		}
	} else {
		note.ID = s.now().UnixMilli()
		note.CreatedAt = s.now().Format(time.RFC3339)
		var pos int
		if err := tx.QueryRow(`SELECT COALESCE(MAX(position), 0) + 1 FROM notes WHERE category = ?`, string(category)).Scan(&pos); err != nil {
			return models.Note{}, fmt.Errorf("failed to position note: %w", err)
		}
		_, err = tx.Exec(`INSERT INTO notes (category, id, title, content, created_at, updated_at, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(category), note.ID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt, pos)
		if err != nil {
			return models.Note{}, fmt.Errorf("failed to insert note: %w", err)
		}
	}

	// Attachment rows mirror the note's current list.
	if _, err := tx.Exec(`DELETE FROM attachments WHERE category = ? AND note_id = ?`, string(category), note.ID); err != nil {
		return models.Note{}, fmt.Errorf("failed to clear attachments: %w", err)
	}
	for i, a := range note.Attachments {
		_, err := tx.Exec(`INSERT INTO attachments (id, category, note_id, name, path, mime, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), string(category), note.ID, a.Name, a.Path, a.Type, i)
		if err != nil {
			return models.Note{}, fmt.Errorf("failed to insert attachment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Note{}, fmt.Errorf("failed to commit note: %w", err)
	}
	return note, nil
}

func (s *SQLiteStore) DeleteNote(category models.Category, id int64) error {
	if err := s.open(); err != nil {
		return err
	}

	rows, err := s.db.Query(`SELECT path FROM attachments WHERE category = ? AND note_id = ?`, string(category), id)
	if err != nil {
		return fmt.Errorf("failed to list attachments: %w", err)
	}
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan attachment: %w", err)
		}
		paths = append(paths, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// Best-effort payload cleanup before the record goes away.
	for _, p := range paths {
		full := filepath.Join(s.attachmentRoot(), filepath.FromSlash(p))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", p).Msg("failed to delete attachment")
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM attachments WHERE category = ? AND note_id = ?`, string(category), id); err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM notes WHERE category = ? AND id = ?`, string(category), id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) SaveAttachment(payload []byte, name string, noteID int64) (string, error) {
	rel := filepath.ToSlash(filepath.Join(AttachmentsDir, fmt.Sprintf("%d", noteID), fmt.Sprintf("%d_%s", s.now().UnixMilli(), name)))
	full := filepath.Join(s.attachmentRoot(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0700); err != nil {
		return "", fmt.Errorf("failed to create attachment directory: %w", err)
	}
	if err := os.WriteFile(full, payload, 0600); err != nil {
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}
	return rel, nil
}

func (s *SQLiteStore) GetCalendar() (models.Calendar, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT date, job, class FROM calendar`)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar: %w", err)
	}
	defer rows.Close()
	cal := models.Calendar{}
	for rows.Next() {
		var date string
		var day models.CalendarDay
		if err := rows.Scan(&date, &day.Job, &day.Class); err != nil {
			return nil, fmt.Errorf("failed to scan calendar day: %w", err)
		}
		cal[date] = day
	}
	return cal, rows.Err()
}

func (s *SQLiteStore) SaveCalendarDay(date string, day models.CalendarDay) error {
	if err := s.open(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO calendar (date, job, class) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET job = excluded.job, class = excluded.class`,
		date, day.Job, day.Class)
	if err != nil {
		return fmt.Errorf("failed to save calendar day: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListGoals() ([]models.Goal, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id, name, target, current, deadline, created_at FROM goals ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()
	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range goals {
		hist, err := s.goalHistory(goals[i].ID)
		if err != nil {
			return nil, err
		}
		goals[i].History = hist
	}
	return goals, nil
}

func (s *SQLiteStore) goalHistory(goalID int64) ([]models.GoalProgress, error) {
	rows, err := s.db.Query(`SELECT date, amount FROM goal_history WHERE goal_id = ? ORDER BY position`, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal history: %w", err)
	}
	defer rows.Close()
	hist := []models.GoalProgress{}
	for rows.Next() {
		var p models.GoalProgress
		if err := rows.Scan(&p.Date, &p.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan goal history: %w", err)
		}
		hist = append(hist, p)
	}
	return hist, rows.Err()
}

func (s *SQLiteStore) CreateGoal(goal models.Goal) (models.Goal, error) {
	if err := s.open(); err != nil {
		return models.Goal{}, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	goal.ID = s.now().UnixMilli()
	now := s.now().Format(time.RFC3339)
	goal.CreatedAt = now
	goal.History = []models.GoalProgress{{Date: now, Amount: goal.CurrentAmount}}

	var pos int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position), 0) + 1 FROM goals`).Scan(&pos); err != nil {
		return models.Goal{}, fmt.Errorf("failed to position goal: %w", err)
	}
	_, err = tx.Exec(`INSERT INTO goals (id, name, target, current, deadline, created_at, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.CreatedAt, pos)
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to insert goal: %w", err)
	}
	_, err = tx.Exec(`INSERT INTO goal_history (id, goal_id, date, amount, position) VALUES (?, ?, ?, ?, 1)`,
		uuid.New().String(), goal.ID, now, goal.CurrentAmount)
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to seed goal history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Goal{}, fmt.Errorf("failed to commit goal: %w", err)
	}
	return goal, nil
}

func (s *SQLiteStore) UpdateGoal(goal models.Goal) error {
	if err := s.open(); err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE goals SET name = ?, target = ?, current = ?, deadline = ? WHERE id = ?`,
		goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("goal not found: %d", goal.ID)
	}
	return nil
}

func (s *SQLiteStore) AdjustGoalAmount(id int64, delta float64) (models.Goal, error) {
	if err := s.open(); err != nil {
		return models.Goal{}, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current float64
	if err := tx.QueryRow(`SELECT current FROM goals WHERE id = ?`, id).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Goal{}, fmt.Errorf("goal not found: %d", id)
		}
		return models.Goal{}, fmt.Errorf("failed to load goal: %w", err)
	}
	current += delta
	if _, err := tx.Exec(`UPDATE goals SET current = ? WHERE id = ?`, current, id); err != nil {
		return models.Goal{}, fmt.Errorf("failed to update goal amount: %w", err)
	}
	var pos int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position), 0) + 1 FROM goal_history WHERE goal_id = ?`, id).Scan(&pos); err != nil {
		return models.Goal{}, fmt.Errorf("failed to position history entry: %w", err)
	}
	_, err = tx.Exec(`INSERT INTO goal_history (id, goal_id, date, amount, position) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), id, s.now().Format(time.RFC3339), current, pos)
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to append goal history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Goal{}, fmt.Errorf("failed to commit goal adjustment: %w", err)
	}

	goals, err := s.ListGoals()
	if err != nil {
		return models.Goal{}, err
	}
	for _, g := range goals {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Goal{}, fmt.Errorf("goal not found: %d", id)
}

func (s *SQLiteStore) DeleteGoal(id int64) error {
	if err := s.open(); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM goal_history WHERE goal_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete goal history: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return tx.Commit()
}
