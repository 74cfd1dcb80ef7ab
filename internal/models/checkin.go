package models

// DayType is the ordinal category derived from a capacity score
type DayType string

const (
	DaySurvival    DayType = "Survival Day"
	DayMaintenance DayType = "Maintenance Day"
	DayProgress    DayType = "Progress Day"
	DayFlow        DayType = "Flow Day"
)

// DayTypes returns every day type in canonical order, lowest capacity first.
func DayTypes() []DayType {
	return []DayType{DaySurvival, DayMaintenance, DayProgress, DayFlow}
}

// Rank returns the position of the day type in canonical order, or -1 if unknown.
func (d DayType) Rank() int {
	for i, dt := range DayTypes() {
		if dt == d {
			return i
		}
	}
	return -1
}

// WorkMode distinguishes client-facing days from solo days
type WorkMode string

const (
	ModeClient WorkMode = "Client Day"
	ModeSolo   WorkMode = "Solo Day"
)

// WorkModes returns both work modes in display order.
func WorkModes() []WorkMode {
	return []WorkMode{ModeClient, ModeSolo}
}

// CheckIn holds the three self-ratings of a planning session
type CheckIn struct {
	Energy        int `json:"energy"`
	Focus         int `json:"focus"`
	EmotionalLoad int `json:"emotional_load"`
}

// TaskSet holds the free-text tasks of a session. Support and Optional are nil
// when the field was never offered or the user did not opt in.
type TaskSet struct {
	Essential string  `json:"essential"`
	Support   *string `json:"support,omitempty"`
	Optional  *string `json:"optional,omitempty"`
}
