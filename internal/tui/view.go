package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateJournal:
		content = docStyle.Render(m.journalList.View())
	case StateGoals:
		content = m.viewGoals()
	case StateGoalForm, StateDepositForm:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Journal", "Goals"} {
		if m.state == SessionState(i) || (m.state > StateGoals && m.previousState == SessionState(i)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	header := titleStyle.Render(m.draft.Date) + subtleStyle.Render(
		fmt.Sprintf("  job %.1fh  class %.1fh", m.draft.Hours.Job, m.draft.Hours.Class))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.editor.View()))
}

func (m Model) viewGoals() string {
	if len(m.goals) == 0 {
		return docStyle.Render(subtleStyle.Render("No financial goals yet. Press 'a' to create one (up to 3)."))
	}

	var rows []string
	for i, g := range m.goals {
		name := g.Name
		if i == m.goalIdx {
			name = selectedStyle.Render("> " + name)
		} else {
			name = "  " + name
		}
		line := fmt.Sprintf("%s  $%.2f / $%.2f", name, g.CurrentAmount, g.TargetAmount)
		if g.Deadline != "" {
			line += subtleStyle.Render("  due " + g.Deadline)
		}
		rows = append(rows, line, "  "+m.progress.ViewAs(g.Percent()/100), "")
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) viewConfirmDelete() string {
	what := "this journal entry"
	if m.deleteTarget == "goal" {
		what = "this goal"
	}
	return docStyle.Render(fmt.Sprintf("Delete %s? [y/n]", what))
}

func (m Model) viewStatus() string {
	if m.errMsg != "" {
		return errorStyle.Render("  " + m.errMsg)
	}
	if m.statusMsg != "" {
		return statusStyle.Render("  " + m.statusMsg)
	}
	return ""
}
