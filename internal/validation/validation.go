package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/daybookhq/daybook/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictGoalCapExceeded     ConflictType = "goal_cap_exceeded"
	ConflictDuplicateEntryDate  ConflictType = "duplicate_entry_date"
	ConflictUnknownCategory     ConflictType = "unknown_category"
	ConflictNegativeHours       ConflictType = "negative_hours"
	ConflictInvalidDate         ConflictType = "invalid_date"
	ConflictMissingAttachment   ConflictType = "missing_attachment"
	ConflictOrphanedAttachments ConflictType = "orphaned_attachments"
)

// Conflict represents a detected inconsistency in the store
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Documents/records involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}
	report := "Conflicts detected:\n"
	for _, c := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

// ValidDate reports whether s is a YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(models.DateFormat, s)
	return err == nil
}

// ValidateGoalCreate applies the caller-side rules for creating a goal: at
// most three goals may exist, the name must be non-empty, the target
// positive, the current amount non-negative, and the deadline (when set) a
// date. No store mutation happens when this fails.
func ValidateGoalCreate(existing []models.Goal, goal models.Goal) error {
	if len(existing) >= models.MaxGoals {
		return fmt.Errorf("maximum %d goals allowed", models.MaxGoals)
	}
	return ValidateGoal(goal)
}

// ValidateGoal checks a goal's fields; used for both create and edit (the
// cap applies only at creation).
func ValidateGoal(goal models.Goal) error {
	if strings.TrimSpace(goal.Name) == "" {
		return fmt.Errorf("goal name must not be empty")
	}
	if goal.TargetAmount <= 0 {
		return fmt.Errorf("target amount must be positive")
	}
	if goal.CurrentAmount < 0 {
		return fmt.Errorf("current amount must not be negative")
	}
	if goal.Deadline != "" && !ValidDate(goal.Deadline) {
		return fmt.Errorf("deadline must be a YYYY-MM-DD date: %q", goal.Deadline)
	}
	return nil
}

// ValidateNote checks a note before it reaches the store.
func ValidateNote(category models.Category, note models.Note) error {
	if !models.ValidCategory(category) {
		return fmt.Errorf("unknown category: %q", category)
	}
	if strings.TrimSpace(note.Title) == "" {
		return fmt.Errorf("note title must not be empty")
	}
	return nil
}

// ValidateHours rejects negative hour values.
func ValidateHours(h models.Hours) error {
	if h.Job < 0 || h.Class < 0 {
		return fmt.Errorf("hours must not be negative")
	}
	return nil
}

// Validator runs whole-store consistency sweeps
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// StoreView is the slice of stored state a sweep inspects.
type StoreView struct {
	Entries     []models.JournalEntry
	Notes       models.NoteMap
	Calendar    models.Calendar
	Goals       []models.Goal
	HasDocument func(rel string) bool // nil disables attachment checks
	Attachments func(dir string) []string
}

// Check sweeps the store for inconsistencies a careless writer (or manual
// edit of the JSON documents) could have introduced.
func (v *Validator) Check(view StoreView) Result {
	result := Result{Conflicts: []Conflict{}}

	// Journal entries must be unique per date.
	dates := make(map[string][]string)
	for _, e := range view.Entries {
		dates[e.Date] = append(dates[e.Date], fmt.Sprintf("%d", e.ID))
		if !ValidDate(e.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Journal entry %d has invalid date %q", e.ID, e.Date),
				Date:        e.Date,
			})
		}
		if e.Hours.Job < 0 || e.Hours.Class < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeHours,
				Description: fmt.Sprintf("Journal entry for %s has negative hours", e.Date),
				Date:        e.Date,
			})
		}
	}
	for date, ids := range dates {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateEntryDate,
				Description: fmt.Sprintf("Duplicate journal entries for %s (IDs: %v)", date, ids),
				Date:        date,
				Items:       ids,
			})
		}
	}

	// Note categories come from a closed set; attachment paths must resolve.
	knownNoteDirs := make(map[string]bool)
	for cat, list := range view.Notes {
		if !models.ValidCategory(cat) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownCategory,
				Description: fmt.Sprintf("Unknown note category %q (%d notes)", cat, len(list)),
				Items:       []string{string(cat)},
			})
		}
		for _, n := range list {
			knownNoteDirs[fmt.Sprintf("%d", n.ID)] = true
			for _, att := range n.Attachments {
				if view.HasDocument != nil && !view.HasDocument(att.Path) {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type:        ConflictMissingAttachment,
						Description: fmt.Sprintf("Note %q references missing attachment %s", n.Title, att.Path),
						Items:       []string{att.Path},
					})
				}
			}
		}
	}

	// Attachment directories with no owning note are leftovers from a
	// best-effort cascade delete.
	if view.Attachments != nil {
		for _, dir := range view.Attachments("attachments") {
			if !knownNoteDirs[dir] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictOrphanedAttachments,
					Description: fmt.Sprintf("Attachment directory %q has no owning note", dir),
					Items:       []string{dir},
				})
			}
		}
	}

	// Calendar days with invalid keys or negative hours.
	for date, day := range view.Calendar {
		if !ValidDate(date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Calendar key %q is not a YYYY-MM-DD date", date),
				Date:        date,
			})
		}
		if day.Job < 0 || day.Class < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeHours,
				Description: fmt.Sprintf("Calendar day %s has negative hours", date),
				Date:        date,
			})
		}
	}

	if len(view.Goals) > models.MaxGoals {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictGoalCapExceeded,
			Description: fmt.Sprintf("%d goals exist, cap is %d", len(view.Goals), models.MaxGoals),
		})
	}

	return result
}
