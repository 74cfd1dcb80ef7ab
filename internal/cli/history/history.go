package history

import (
	"fmt"

	"github.com/julianstephens/dayshape/internal/cli"
	"github.com/julianstephens/dayshape/internal/cli/formatter"
)

type ListCmd struct {
	Limit int `help:"Show only the most recent N check-ins (0 shows all)." default:"0"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	records, err := ctx.Store.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No check-ins logged yet. Use 'dayshape plan --log' to start your history.")
		return nil
	}

	shown := records
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[len(shown)-c.Limit:]
	}

	rows := make([][]string, 0, len(shown))
	for _, r := range shown {
		rows = append(rows, []string{
			r.Date,
			formatter.DayTypeStyle(r.DayType).Render(string(r.DayType)),
			string(r.WorkMode),
			fmt.Sprint(r.CapacityScore),
			fmt.Sprintf("%d / %d / %d", r.Energy, r.Focus, r.EmotionalLoad),
		})
	}

	fmt.Print(formatter.RenderTable([]string{"Date", "Day type", "Work mode", "Score", "E / F / L"}, rows))
	fmt.Println(formatter.Dim(fmt.Sprintf("%d of %d check-ins · %s", len(shown), len(records), ctx.Store.GetConfigPath())))
	return nil
}

type ReflectCmd struct{}

func (c *ReflectCmd) Run(ctx *cli.Context) error {
	insights, err := ctx.Analyzer().Reflect()
	if err != nil {
		return err
	}
	fmt.Println(formatter.RenderInsights(insights))
	return nil
}
