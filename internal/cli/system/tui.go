package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayshape/internal/cli"
	"github.com/julianstephens/dayshape/internal/tui"
)

type TuiCmd struct {
	Export string `help:"Directory the summary is exported into." type:"path" default:"." placeholder:"DIR"`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// back up what exists before this session can append to it
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Store, c.Export, ctx.Today()), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
