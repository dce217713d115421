package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/daybookhq/daybook/internal/models"
	"github.com/daybookhq/daybook/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width - 4)
		m.editor.SetHeight(msg.Height - 10)
		m.journalList.SetSize(msg.Width-4, msg.Height-6)
		m.progress.Width = msg.Width - 20
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case StateToday:
		return m.updateToday(msg)
	case StateJournal:
		return m.updateJournal(msg)
	case StateGoals:
		return m.updateGoals(msg)
	case StateGoalForm, StateDepositForm:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m, nil
}

func (m Model) nextState(forward bool) Model {
	order := []SessionState{StateToday, StateJournal, StateGoals}
	for i, s := range order {
		if s != m.state {
			continue
		}
		if forward {
			m.state = order[(i+1)%len(order)]
		} else {
			m.state = order[(i+len(order)-1)%len(order)]
		}
		break
	}
	m.statusMsg = ""
	m.errMsg = ""
	return m
}

func (m Model) updateToday(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Tab):
			m.saveDraft()
			return m.nextState(true), nil
		case key.Matches(keyMsg, m.keys.ShiftTab):
			m.saveDraft()
			return m.nextState(false), nil
		case key.Matches(keyMsg, m.keys.Save):
			m.saveDraft()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// saveDraft persists the editor content with today's date. Hours carry over
// unchanged from the loaded draft.
func (m *Model) saveDraft() {
	if err := m.rollover.SaveToday(m.editor.Value(), m.draft.Hours); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.draft.Content = m.editor.Value()
	m.statusMsg = "Draft saved."
}

func (m Model) updateJournal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Tab):
			return m.nextState(true), nil
		case key.Matches(keyMsg, m.keys.ShiftTab):
			return m.nextState(false), nil
		case key.Matches(keyMsg, m.keys.Delete):
			if item, ok := m.journalList.SelectedItem().(entryItem); ok {
				m.previousState = m.state
				m.state = StateConfirmDelete
				m.deleteTarget = "entry"
				m.deleteID = item.entry.ID
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.journalList, cmd = m.journalList.Update(msg)
	return m, cmd
}

func (m Model) updateGoals(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Tab):
		return m.nextState(true), nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		return m.nextState(false), nil
	case key.Matches(keyMsg, m.keys.Up):
		if m.goalIdx > 0 {
			m.goalIdx--
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Down):
		if m.goalIdx < len(m.goals)-1 {
			m.goalIdx++
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Add):
		if len(m.goals) >= models.MaxGoals {
			m.errMsg = fmt.Sprintf("Maximum %d goals allowed.", models.MaxGoals)
			return m, nil
		}
		m.goalForm = &GoalFormModel{}
		m.form = newGoalForm(m.goalForm)
		m.previousState = m.state
		m.state = StateGoalForm
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Deposit):
		if len(m.goals) == 0 {
			return m, nil
		}
		m.depositForm = &GoalFormModel{}
		m.form = newDepositForm(m.depositForm)
		m.previousState = m.state
		m.state = StateDepositForm
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Delete):
		if len(m.goals) == 0 {
			return m, nil
		}
		m.previousState = m.state
		m.state = StateConfirmDelete
		m.deleteTarget = "goal"
		m.deleteID = m.goals[m.goalIdx].ID
		return m, nil
	}
	return m, nil
}

func newGoalForm(f *GoalFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal name").Value(&f.Name),
			huh.NewInput().Title("Target amount ($)").Value(&f.Target),
			huh.NewInput().Title("Starting amount ($)").Value(&f.Current),
			huh.NewInput().Title("Deadline (YYYY-MM-DD, optional)").Value(&f.Deadline),
		),
	)
}

func newDepositForm(f *GoalFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Amount to add ($)").Value(&f.Current),
		),
	)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.state {
		case StateGoalForm:
			m.submitGoalForm()
		case StateDepositForm:
			m.submitDepositForm()
		}
		m.state = m.previousState
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m *Model) submitGoalForm() {
	target, err := strconv.ParseFloat(strings.TrimSpace(m.goalForm.Target), 64)
	if err != nil {
		m.errMsg = "Invalid target amount."
		return
	}
	current := 0.0
	if s := strings.TrimSpace(m.goalForm.Current); s != "" {
		if current, err = strconv.ParseFloat(s, 64); err != nil {
			m.errMsg = "Invalid starting amount."
			return
		}
	}
	goal := models.Goal{
		Name:          strings.TrimSpace(m.goalForm.Name),
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      strings.TrimSpace(m.goalForm.Deadline),
	}
	if err := validation.ValidateGoalCreate(m.goals, goal); err != nil {
		m.errMsg = err.Error()
		return
	}
	if _, err := m.store.CreateGoal(goal); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.statusMsg = "Goal created."
	m.reload()
}

func (m *Model) submitDepositForm() {
	delta, err := strconv.ParseFloat(strings.TrimSpace(m.depositForm.Current), 64)
	if err != nil {
		m.errMsg = "Invalid amount."
		return
	}
	goal := m.goals[m.goalIdx]
	if _, err := m.store.AdjustGoalAmount(goal.ID, delta); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.statusMsg = fmt.Sprintf("Added $%.2f to %s.", delta, goal.Name)
	m.reload()
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		var err error
		switch m.deleteTarget {
		case "entry":
			err = m.store.DeleteEntry(m.deleteID)
		case "goal":
			err = m.store.DeleteGoal(m.deleteID)
		}
		if err != nil {
			m.errMsg = err.Error()
		} else {
			m.statusMsg = "Deleted."
			m.reload()
		}
		m.state = m.previousState
	case "n", "N", "esc":
		m.state = m.previousState
	}
	return m, nil
}
