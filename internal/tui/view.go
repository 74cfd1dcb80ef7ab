package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateCheckIn, StateClosing:
		content = m.form.View()
	case StatePlan:
		content = m.viewPlan()
	case StateDone:
		content = m.viewDone()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("dayshape · "+m.date.Format("Monday, January 2")),
		"",
		content,
	))
}

func (m Model) viewPlan() string {
	parts := []string{m.planModel.View(), ""}
	if m.err != nil {
		parts = append(parts, dangerStyle.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewDone() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		ClosingMessage(*m.closing),
		"",
		warningStyle.Render("These answers are just for you and are not saved."),
		"",
		"Press enter or q to leave.",
	)
}
