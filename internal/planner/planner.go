package planner

import (
	"time"

	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/models"
)

// Plan is the derived shape of a day for one check-in and work mode
type Plan struct {
	CheckIn    models.CheckIn
	WorkMode   models.WorkMode
	Score      int
	DayType    models.DayType
	Structure  []string
	Reflection string
}

// Score combines the three ratings into a capacity score.
// Ratings are not validated; out-of-range values pass straight through.
func Score(c models.CheckIn) int {
	return c.Energy + c.Focus - c.EmotionalLoad
}

// Classify maps a capacity score to its day type. Defined for every integer.
func Classify(score int) models.DayType {
	switch {
	case score <= constants.SurvivalMax:
		return models.DaySurvival
	case score <= constants.MaintenanceMax:
		return models.DayMaintenance
	case score <= constants.ProgressMax:
		return models.DayProgress
	default:
		return models.DayFlow
	}
}

// Build derives the full plan for a check-in
func Build(c models.CheckIn, mode models.WorkMode) Plan {
	score := Score(c)
	dayType := Classify(score)
	return Plan{
		CheckIn:    c,
		WorkMode:   mode,
		Score:      score,
		DayType:    dayType,
		Structure:  ResolveStructure(dayType, mode),
		Reflection: Reflect(dayType, mode),
	}
}

// OffersSupportTask reports whether a supporting task is asked for on this day type
func OffersSupportTask(dayType models.DayType) bool {
	return dayType != models.DaySurvival
}

// Record snapshots the plan for the history log
func (p Plan) Record(date time.Time) models.HistoryRecord {
	return models.HistoryRecord{
		Date:          date.Format(constants.DateFormat),
		DayType:       p.DayType,
		WorkMode:      p.WorkMode,
		CapacityScore: p.Score,
		Energy:        p.CheckIn.Energy,
		Focus:         p.CheckIn.Focus,
		EmotionalLoad: p.CheckIn.EmotionalLoad,
	}
}
