// Package rollover implements the day-boundary rule that turns a stale daily
// draft into a permanent journal entry. It sits above storage.Provider so
// every backend observes identical behavior.
package rollover

import (
	"errors"
	"strings"
	"time"

	"github.com/daybookhq/daybook/internal/logger"
	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/storage"
)

// Manager owns the get/save contract for the daily draft. The clock is
// injectable so tests can cross midnight at will.
type Manager struct {
	store storage.Provider
	log   *logger.Logger
	now   func() time.Time
}

func New(store storage.Provider, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// NewWithClock is New with an explicit clock, for tests.
func NewWithClock(store storage.Provider, log *logger.Logger, now func() time.Time) *Manager {
	m := New(store, log)
	m.now = now
	return m
}

// GetToday returns the current day's draft, archiving yesterday's first when
// the calendar day has changed since the draft was written.
//
// The check is idempotent: within one day repeated calls perform no journal
// writes, and the first call after midnight performs exactly one rollover.
// Any time-of-day difference within the same day is ignored; day comparison
// uses the local timezone. A future-dated draft (clock skew) is returned
// unchanged.
func (m *Manager) GetToday() (models.TodayDraft, error) {
	today := m.today()

	draft, err := m.store.GetDraft()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NewDraft(today), nil
		}
		return models.TodayDraft{}, err
	}

	draftDay, err := time.ParseInLocation(models.DateFormat, draft.Date, time.Local)
	if err != nil {
		// Unparseable date: treat like an absent draft rather than failing
		// every read forever.
		m.log.Warn().Str("date", draft.Date).Msg("draft has invalid date, resetting")
		fresh := models.NewDraft(today)
		if err := m.store.SaveDraft(fresh); err != nil {
			return models.TodayDraft{}, err
		}
		return fresh, nil
	}

	if !draftDay.Before(today) {
		// Same day, or a future date from clock skew: no rollover.
		return draft, nil
	}

	if strings.TrimSpace(draft.Content) != "" {
		entry := models.JournalEntry{
			Date:    draft.Date,
			Title:   draftDay.Format(models.TitleFormat),
			Content: draft.Content,
			Hours:   draft.Hours,
		}
		if err := m.store.UpsertEntry(entry); err != nil {
			return models.TodayDraft{}, err
		}
		m.log.Info().Str("date", draft.Date).Msg("rolled over draft to journal")
	}

	fresh := models.NewDraft(today)
	if err := m.store.SaveDraft(fresh); err != nil {
		return models.TodayDraft{}, err
	}
	return fresh, nil
}

// SaveToday unconditionally overwrites the draft with the given content and
// hours, dated today. It never triggers rollover itself: if a session spans
// midnight with no intervening GetToday, the draft's date and content
// silently diverge until the next read. That staleness window is preserved
// from the original behavior, not fixed here.
func (m *Manager) SaveToday(content string, hours models.Hours) error {
	return m.store.SaveDraft(models.TodayDraft{
		Content: content,
		Date:    m.today().Format(models.DateFormat),
		Hours:   hours,
	})
}

// today truncates the clock to local midnight.
func (m *Manager) today() time.Time {
	now := m.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
