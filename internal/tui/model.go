package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/rollover"
	"github.com/daybookhq/daybook/internal/storage"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateJournal
	StateGoals
	StateGoalForm
	StateDepositForm
	StateConfirmDelete
)

type GoalFormModel struct {
	Name     string
	Target   string
	Current  string
	Deadline string
}

type entryItem struct {
	entry models.JournalEntry
}

func (i entryItem) Title() string { return i.entry.Date + "  " + i.entry.Title }
func (i entryItem) Description() string {
	preview := i.entry.Content
	if idx := strings.IndexByte(preview, '\n'); idx >= 0 {
		preview = preview[:idx]
	}
	if len(preview) > 70 {
		preview = preview[:70] + "..."
	}
	return fmt.Sprintf("%s | job %.1fh class %.1fh", preview, i.entry.Hours.Job, i.entry.Hours.Class)
}
func (i entryItem) FilterValue() string { return i.entry.Date + " " + i.entry.Content }

type Model struct {
	store    storage.Provider
	rollover *rollover.Manager

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	draft       models.TodayDraft
	editor      textarea.Model
	journalList list.Model

	goals    []models.Goal
	goalIdx  int
	progress progress.Model

	form        *huh.Form
	goalForm    *GoalFormModel
	depositForm *GoalFormModel

	deleteTarget string // "entry" or "goal"
	deleteID     int64

	statusMsg string
	errMsg    string
	width     int
	height    int
	quitting  bool
}

func NewModel(store storage.Provider, mgr *rollover.Manager) Model {
	ed := textarea.New()
	ed.Placeholder = "How was your day?"
	ed.CharLimit = 0
	ed.Focus()

	jl := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	jl.Title = "Journal"
	jl.SetShowHelp(false)

	m := Model{
		store:       store,
		rollover:    mgr,
		state:       StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		editor:      ed,
		journalList: jl,
		progress:    progress.New(progress.WithDefaultGradient()),
	}
	m.reload()
	return m
}

// reload pulls fresh state from the store. Reading the draft is what
// triggers rollover, so opening the TUI after midnight archives yesterday.
func (m *Model) reload() {
	draft, err := m.rollover.GetToday()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.draft = draft
	m.editor.SetValue(draft.Content)

	entries, err := m.store.ListEntries()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryItem{entry: e})
	}
	m.journalList.SetItems(items)

	goals, err := m.store.ListGoals()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.goals = goals
	if m.goalIdx >= len(m.goals) {
		m.goalIdx = 0
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}
