package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/models"
	"github.com/julianstephens/dayshape/internal/planner"
)

// CheckInValues holds everything the check-in form asks for. Fields bound to
// the form are updated in place as the user answers.
type CheckInValues struct {
	Energy       int
	Focus        int
	Load         int
	Mode         models.WorkMode
	Essential    string
	Support      string
	WantOptional bool
	Optional     string
	Log          bool
}

func (v *CheckInValues) CheckIn() models.CheckIn {
	return models.CheckIn{Energy: v.Energy, Focus: v.Focus, EmotionalLoad: v.Load}
}

func (v *CheckInValues) DayType() models.DayType {
	return planner.Classify(planner.Score(v.CheckIn()))
}

// Tasks returns the task set; support is dropped on days it is not offered
// and optional is dropped unless the user opted in.
func (v *CheckInValues) Tasks() models.TaskSet {
	ts := models.TaskSet{Essential: strings.TrimSpace(v.Essential)}
	if planner.OffersSupportTask(v.DayType()) {
		ts.Support = nonEmpty(v.Support)
	}
	if v.WantOptional {
		ts.Optional = nonEmpty(v.Optional)
	}
	return ts
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func ratingOptions(low, high string) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, constants.MaxRating-constants.MinRating+1)
	for r := constants.MinRating; r <= constants.MaxRating; r++ {
		label := fmt.Sprint(r)
		switch r {
		case constants.MinRating:
			label += " · " + low
		case constants.MaxRating:
			label += " · " + high
		}
		opts = append(opts, huh.NewOption(label, r))
	}
	return opts
}

// NewCheckInForm builds the morning check-in: ratings, work mode, tasks and
// whether to log the session.
func NewCheckInForm(v *CheckInValues) *huh.Form {
	if v.Mode == "" {
		v.Mode = models.ModeSolo
	}
	for _, r := range []*int{&v.Energy, &v.Focus, &v.Load} {
		if *r == 0 {
			*r = constants.DefaultRating
		}
	}

	modeOptions := make([]huh.Option[models.WorkMode], 0, 2)
	for _, m := range models.WorkModes() {
		modeOptions = append(modeOptions, huh.NewOption(string(m), m))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Energy").
				Description("How much physical and mental energy do you have?").
				Options(ratingOptions("depleted", "energised")...).
				Value(&v.Energy),
			huh.NewSelect[int]().
				Title("Focus").
				Description("How easily can you concentrate today?").
				Options(ratingOptions("scattered", "sharp")...).
				Value(&v.Focus),
			huh.NewSelect[int]().
				Title("Emotional load").
				Description("How heavy does today feel?").
				Options(ratingOptions("light", "heavy")...).
				Value(&v.Load),
		),
		huh.NewGroup(
			huh.NewSelect[models.WorkMode]().
				Title("Work mode").
				Options(modeOptions...).
				Value(&v.Mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Essential task").
				Description("The one thing that matters most today.").
				Value(&v.Essential),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Supporting task").
				Value(&v.Support),
		).WithHideFunc(func() bool {
			return !planner.OffersSupportTask(v.DayType())
		}),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Add an optional task?").
				Value(&v.WantOptional),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Optional task").
				Value(&v.Optional),
		).WithHideFunc(func() bool {
			return !v.WantOptional
		}),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Log this check-in to your history?").
				Value(&v.Log),
		),
	)
}

// ClosingValues are the end-of-day answers. They are shown back, never stored.
type ClosingValues struct {
	WithinCapacity bool
	Word           string
}

func NewClosingForm(v *ClosingValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("I worked within my capacity today").
				Affirmative("Yes").
				Negative("Not quite").
				Value(&v.WithinCapacity),
			huh.NewInput().
				Title("One word for today").
				CharLimit(32).
				Value(&v.Word),
		),
	)
}

// ClosingMessage reflects the closing answers back to the user
func ClosingMessage(v ClosingValues) string {
	var b strings.Builder
	if v.WithinCapacity {
		b.WriteString("You stayed within your capacity today.")
	} else {
		b.WriteString("Today asked for more than you had. That is information, not failure.")
	}
	if w := strings.TrimSpace(v.Word); w != "" {
		fmt.Fprintf(&b, " Your word for today: %q.", w)
	}
	return b.String()
}
