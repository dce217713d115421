package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/daybookhq/daybook/internal/config"
	"github.com/daybookhq/daybook/internal/logger"
	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/rollover"
	"github.com/daybookhq/daybook/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Rollover *rollover.Manager
	// Bridge is set only for the JSON backend; the sqlite backend has no
	// document bridge.
	Bridge storage.Bridge
	Config config.Config
	Log    *logger.Logger
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %q", s)
	}
	return id, nil
}

func parseDate(s string) (string, error) {
	if s == "" || s == "today" {
		return time.Now().Format(models.DateFormat), nil
	}
	t, err := time.Parse(models.DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t.Format(models.DateFormat), nil
}

func formatHours(h models.Hours) string {
	return fmt.Sprintf("job %.1fh, class %.1fh", h.Job, h.Class)
}

// findNote locates a note by id, searching all categories when cat is empty.
func findNote(notes models.NoteMap, cat models.Category, id int64) (models.Category, models.Note, error) {
	cats := models.Categories
	if cat != "" {
		cats = []models.Category{cat}
	}
	for _, c := range cats {
		for _, n := range notes[c] {
			if n.ID == id {
				return c, n, nil
			}
		}
	}
	return "", models.Note{}, fmt.Errorf("note not found: %d", id)
}
