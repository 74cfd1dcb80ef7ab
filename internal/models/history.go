package models

// HistoryRecord is one persisted snapshot of a planning session
type HistoryRecord struct {
	Date          string   `json:"date"` // YYYY-MM-DD format
	DayType       DayType  `json:"day_type"`
	WorkMode      WorkMode `json:"work_mode"`
	CapacityScore int      `json:"capacity_score"`
	Energy        int      `json:"energy"`
	Focus         int      `json:"focus"`
	EmotionalLoad int      `json:"emotional_load"`
}

// CheckIn returns the ratings the record was built from
func (r HistoryRecord) CheckIn() CheckIn {
	return CheckIn{Energy: r.Energy, Focus: r.Focus, EmotionalLoad: r.EmotionalLoad}
}
