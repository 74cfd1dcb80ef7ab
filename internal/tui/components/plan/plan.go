package plan

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayshape/internal/cli/formatter"
	"github.com/julianstephens/dayshape/internal/models"
	"github.com/julianstephens/dayshape/internal/patterns"
	"github.com/julianstephens/dayshape/internal/planner"
)

// Model is a scrollable view of a finished check-in.
type Model struct {
	viewport viewport.Model
	Plan     *planner.Plan
	Tasks    models.TaskSet
	Insights []patterns.Insight
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Plan == nil {
		return "No plan yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetPlan(p planner.Plan, tasks models.TaskSet, insights []patterns.Insight) {
	m.Plan = &p
	m.Tasks = tasks
	m.Insights = insights
	m.Render()
}

// Content returns the text currently shown in the viewport
func (m Model) Content() string {
	if m.Plan == nil {
		return ""
	}
	return formatter.RenderPlan(*m.Plan, m.Tasks) + "\n\n" + formatter.RenderInsights(m.Insights)
}

func (m *Model) Render() {
	if m.Plan == nil {
		m.viewport.SetContent("No plan yet.")
		return
	}
	m.viewport.SetContent(m.Content())
	m.viewport.GotoTop()
}
