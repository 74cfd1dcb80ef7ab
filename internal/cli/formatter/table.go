package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible width so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const colGap = 2
	var b strings.Builder

	// every cell is padded to its column width so all lines share one width
	writeCell := func(i int, rendered string, visible int) {
		b.WriteString(rendered)
		b.WriteString(strings.Repeat(" ", widths[i]-visible))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}

	for i, h := range headers {
		writeCell(i, StyleHeader.Render(h), lipgloss.Width(h))
	}
	b.WriteString("\n")

	for i, w := range widths {
		writeCell(i, StyleDim.Render(strings.Repeat("─", w)), w)
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(i, cell, lipgloss.Width(cell))
		}
		b.WriteString("\n")
	}

	return b.String()
}
