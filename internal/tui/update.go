package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayshape/internal/logger"
	"github.com/julianstephens/dayshape/internal/planner"
	"github.com/julianstephens/dayshape/internal/summary"
)

const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.planModel.SetSize(max(msg.Width-4, 0), max(msg.Height-chromeHeight, 0))
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case StateCheckIn:
		return m.updateForm(msg, Model.finishCheckIn, func(m Model) (Model, tea.Cmd) {
			m.quitting = true
			return m, tea.Quit
		})
	case StateClosing:
		done := func(m Model) (Model, tea.Cmd) {
			m.state = StateDone
			return m, nil
		}
		return m.updateForm(msg, done, done)
	case StatePlan:
		return m.updatePlan(msg)
	case StateDone:
		if msg, ok := msg.(tea.KeyMsg); ok && (key.Matches(msg, m.keys.Quit) || msg.Type == tea.KeyEnter) {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg, onComplete, onAbort func(Model) (Model, tea.Cmd)) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return onAbort(m)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		next, nextCmd := onComplete(m)
		return next, tea.Batch(cmd, nextCmd)
	case huh.StateAborted:
		return onAbort(m)
	}
	return m, cmd
}

// finishCheckIn builds the plan from the form answers, logs it when asked and
// loads history reflections.
func (m Model) finishCheckIn() (Model, tea.Cmd) {
	m.plan = planner.Build(m.values.CheckIn(), m.values.Mode)
	m.tasks = m.values.Tasks()

	if m.values.Log {
		if err := m.store.Append(m.plan.Record(m.date)); err != nil {
			logger.Error("Failed to log check-in", "error", err)
			m.err = fmt.Errorf("failed to log check-in: %w", err)
		} else {
			m.logged = true
			m.status = "Check-in logged to your history."
		}
	}

	insights, err := m.analyzer.Reflect()
	if err != nil {
		logger.Warn("Failed to load history for reflection", "error", err)
	}

	m.planModel.SetPlan(m.plan, m.tasks, insights)
	m.state = StatePlan
	return m, nil
}

func (m Model) updatePlan(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Export):
			m.export()
			return m, nil
		case key.Matches(msg, m.keys.Close):
			m.closing = &ClosingValues{}
			m.form = NewClosingForm(m.closing)
			m.state = StateClosing
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.planModel, cmd = m.planModel.Update(msg)
	return m, cmd
}

func (m *Model) export() {
	path, err := summary.Write(m.exportDir, summary.Input{Plan: m.plan, Tasks: m.tasks, Date: m.date})
	switch {
	case errors.Is(err, summary.ErrNoEssential):
		m.err = nil
		m.status = "Add an essential task before exporting."
	case err != nil:
		logger.Error("Export failed", "error", err)
		m.err = err
	default:
		m.err = nil
		m.status = "Summary saved to " + path
	}
}
