package planner

import "github.com/julianstephens/dayshape/internal/models"

var baseStructures = map[models.DayType][]string{
	models.DaySurvival: {
		"Choose one essential task only",
		"Do one grounding or body-based activity",
		"Stopping early is allowed",
	},
	models.DayMaintenance: {
		"Complete 2–3 light or admin tasks",
		"One short focused block (25 minutes)",
		"One reset or transition break",
	},
	models.DayProgress: {
		"One priority task",
		"One supporting task",
		"One optional stretch task",
	},
	models.DayFlow: {
		"One deep work block (60–90 minutes)",
		"One creative or revenue-generating task",
		"One intentional closing ritual",
	},
}

var (
	clientDayItems = []string{
		"Leave a buffer before and after client calls",
		"Keep follow-ups low-demand: short replies, no new commitments",
	}
	soloDayItems = []string{
		"Protect one uninterrupted focus window",
		"Leave room for optional exploration if energy allows",
	}
)

// BaseStructure returns a copy of the base guidance for a day type.
// An unknown day type yields an empty slice.
func BaseStructure(dayType models.DayType) []string {
	base, ok := baseStructures[dayType]
	if !ok {
		return []string{}
	}
	out := make([]string, len(base))
	copy(out, base)
	return out
}

// ResolveStructure returns the base guidance followed by the two work mode items.
// Any mode other than Client Day is treated as a Solo Day.
func ResolveStructure(dayType models.DayType, mode models.WorkMode) []string {
	structure := BaseStructure(dayType)
	if mode == models.ModeClient {
		return append(structure, clientDayItems...)
	}
	return append(structure, soloDayItems...)
}
