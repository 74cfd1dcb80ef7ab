package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayshape/internal/models"
	"github.com/julianstephens/dayshape/internal/patterns"
	"github.com/julianstephens/dayshape/internal/planner"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RenderPlan renders the plan as shown on screen after a check-in.
func RenderPlan(p planner.Plan, tasks models.TaskSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Bold("Capacity score:"), DayTypeStyle(p.DayType).Render(fmt.Sprint(p.Score)))
	fmt.Fprintf(&b, "%s  %s\n", Bold("Day type:"), DayTypeStyle(p.DayType).Render(string(p.DayType)))
	fmt.Fprintf(&b, "%s  %s\n", Bold("Work mode:"), p.WorkMode)
	b.WriteString(Dim(fmt.Sprintf("energy %d · focus %d · emotional load %d",
		p.CheckIn.Energy, p.CheckIn.Focus, p.CheckIn.EmotionalLoad)))
	b.WriteString("\n\n")

	b.WriteString(Header("Structure") + "\n")
	for _, item := range p.Structure {
		b.WriteString("  • " + item + "\n")
	}

	b.WriteString("\n" + Header("Tasks") + "\n")
	b.WriteString(taskLine("Essential", &tasks.Essential))
	b.WriteString(taskLine("Support", tasks.Support))
	b.WriteString(taskLine("Optional", tasks.Optional))

	b.WriteString("\n" + Header("Reflection") + "\n")
	b.WriteString(p.Reflection)

	return b.String()
}

func taskLine(label string, task *string) string {
	if task == nil || strings.TrimSpace(*task) == "" {
		return ""
	}
	return fmt.Sprintf("  %s %s\n", StyleBlue.Render(label+":"), *task)
}

// RenderInsights renders history reflections, or a note when there are none yet.
func RenderInsights(insights []patterns.Insight) string {
	if len(insights) == 0 {
		return Dim("Not enough history yet to reflect on patterns. Keep logging your check-ins.")
	}

	lines := make([]string, 0, len(insights))
	for _, in := range insights {
		lines = append(lines, "  "+in.Text)
	}
	return Header("Patterns") + "\n" + strings.Join(lines, "\n")
}
