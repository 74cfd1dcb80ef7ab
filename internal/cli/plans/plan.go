package plans

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayshape/internal/cli"
	"github.com/julianstephens/dayshape/internal/cli/formatter"
	"github.com/julianstephens/dayshape/internal/logger"
	"github.com/julianstephens/dayshape/internal/models"
	"github.com/julianstephens/dayshape/internal/planner"
	"github.com/julianstephens/dayshape/internal/summary"
	"github.com/julianstephens/dayshape/internal/tui"
)

type PlanCmd struct {
	Energy    int    `help:"Energy rating (1-5)." short:"e"`
	Focus     int    `help:"Focus rating (1-5)." short:"f"`
	Load      int    `help:"Emotional load rating (1-5)." short:"l"`
	Mode      string `help:"Work mode: client or solo." short:"m"`
	Essential string `help:"The one essential task for today."`
	Support   string `help:"A supporting task (not offered on Survival Days)."`
	Optional  string `help:"An optional stretch task."`
	Export    string `help:"Directory to write the plain-text day summary into." type:"path" placeholder:"DIR"`
	Log       bool   `help:"Append this check-in to the history."`
}

// interactive reports whether any required answer is missing from the flags
func (c *PlanCmd) interactive() bool {
	return c.Energy == 0 || c.Focus == 0 || c.Load == 0 || c.Mode == ""
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	checkIn, mode, tasks, logIt, err := c.answers()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Check-in cancelled.")
			return nil
		}
		return err
	}

	for _, r := range []struct {
		name  string
		value int
	}{{"energy", checkIn.Energy}, {"focus", checkIn.Focus}, {"emotional load", checkIn.EmotionalLoad}} {
		if err := cli.ValidateRating(r.name, r.value); err != nil {
			return err
		}
	}

	// refuse a doomed export before anything is written
	if c.Export != "" {
		if err := summary.Exportable(tasks); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
	}

	p := planner.Build(checkIn, mode)
	if tasks.Support != nil && !planner.OffersSupportTask(p.DayType) {
		fmt.Println(formatter.Warning("Supporting tasks are not planned on a Survival Day, leaving it out."))
		tasks.Support = nil
	}

	fmt.Println(formatter.RenderBox("Today's plan", formatter.RenderPlan(p, tasks)))

	today := ctx.Today()
	if logIt {
		ctx.PerformAutomaticBackup()
		if err := ctx.Store.Append(p.Record(today)); err != nil {
			return fmt.Errorf("failed to log check-in: %w", err)
		}
		logger.Info("Logged check-in", "day_type", p.DayType, "score", p.Score)
		fmt.Println(formatter.Success("Check-in logged to your history."))

		insights, err := ctx.Analyzer().Reflect()
		if err != nil {
			logger.Warn("Failed to load history for reflection", "error", err)
		} else {
			fmt.Println()
			fmt.Println(formatter.RenderInsights(insights))
		}
	}

	if c.Export != "" {
		path, err := summary.Write(c.Export, summary.Input{Plan: p, Tasks: tasks, Date: today})
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Println(formatter.Success("Summary saved to " + path))
	}

	return nil
}

// answers returns the check-in from flags, asking for anything missing.
func (c *PlanCmd) answers() (models.CheckIn, models.WorkMode, models.TaskSet, bool, error) {
	var mode models.WorkMode
	if c.Mode != "" {
		m, err := cli.ParseWorkMode(c.Mode)
		if err != nil {
			return models.CheckIn{}, "", models.TaskSet{}, false, err
		}
		mode = m
	}

	if !c.interactive() {
		tasks := models.TaskSet{
			Essential: strings.TrimSpace(c.Essential),
			Support:   cli.OptionalTask(c.Support),
			Optional:  cli.OptionalTask(c.Optional),
		}
		checkIn := models.CheckIn{Energy: c.Energy, Focus: c.Focus, EmotionalLoad: c.Load}
		return checkIn, mode, tasks, c.Log, nil
	}

	v := &tui.CheckInValues{
		Energy:       c.Energy,
		Focus:        c.Focus,
		Load:         c.Load,
		Mode:         mode,
		Essential:    c.Essential,
		Support:      c.Support,
		WantOptional: c.Optional != "",
		Optional:     c.Optional,
		Log:          c.Log,
	}
	if err := tui.NewCheckInForm(v).Run(); err != nil {
		return models.CheckIn{}, "", models.TaskSet{}, false, err
	}
	return v.CheckIn(), v.Mode, v.Tasks(), v.Log, nil
}
