package planner

import (
	"strings"

	"github.com/julianstephens/dayshape/internal/models"
)

var dayNarratives = map[models.DayType]string{
	models.DaySurvival:    "Today is about getting through with care. Doing less is the plan, not a failure of it.",
	models.DayMaintenance: "Today has room for steady, light work. Keep things moving without forcing momentum.",
	models.DayProgress:    "You have enough capacity to move one meaningful thing forward today.",
	models.DayFlow:        "Capacity is high today. Point it at the work that matters most and still close the day on purpose.",
}

const (
	clientNarrative = "Client work draws on emotional energy, so budget for recovery between conversations."
	soloNarrative   = "A solo day is yours to shape; guard your attention before you spend it."
)

// Reflect returns the static narrative for a day type and work mode.
func Reflect(dayType models.DayType, mode models.WorkMode) string {
	modeText := soloNarrative
	if mode == models.ModeClient {
		modeText = clientNarrative
	}
	return strings.TrimSpace(dayNarratives[dayType] + " " + modeText)
}
