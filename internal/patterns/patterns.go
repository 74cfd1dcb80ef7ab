// Package patterns turns the planning history into short reflections: which
// day type has dominated recently, and how often the shape of the latest
// check-in has recurred.
package patterns

import (
	"fmt"
	"math"
	"strings"

	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/logger"
	"github.com/julianstephens/dayshape/internal/models"
)

// Insight is a derived reflection. It is never persisted.
type Insight struct {
	Text string
	// Count is the number of records the insight is about: the dominant day
	// type's occurrences for a frequency insight, the group size for a
	// recurrence insight.
	Count int
}

// HistorySource is the part of a storage provider the analyzer reads from.
type HistorySource interface {
	LoadAll() ([]models.HistoryRecord, error)
}

// Features maps a record onto the vector used for grouping:
// energy, focus, emotional load, capacity score, and 1 for a client day else 0.
func Features(r models.HistoryRecord) []float64 {
	mode := constants.FeatureSoloDay
	if r.WorkMode == models.ModeClient {
		mode = constants.FeatureClientDay
	}
	c := r.CheckIn()
	return []float64{
		float64(c.Energy),
		float64(c.Focus),
		float64(c.EmotionalLoad),
		float64(r.CapacityScore),
		mode,
	}
}

// Frequency describes the most common day type and the work mode split over
// the most recent records. It is absent until enough history exists.
func Frequency(records []models.HistoryRecord) (Insight, bool) {
	if len(records) < constants.MinFrequencyRecords {
		return Insight{}, false
	}

	window := records
	if len(window) > constants.FrequencyWindow {
		window = window[len(window)-constants.FrequencyWindow:]
	}

	counts := make(map[models.DayType]int)
	client := 0
	for _, r := range window {
		counts[r.DayType]++
		if r.WorkMode == models.ModeClient {
			client++
		}
	}

	// DayTypes is canonical order, so strict > keeps the lowest on ties
	var dominant models.DayType
	top := 0
	for _, dt := range models.DayTypes() {
		if counts[dt] > top {
			dominant, top = dt, counts[dt]
		}
	}
	if top == 0 {
		logger.Warn("No recognised day types in recent history", "records", len(window))
		return Insight{}, false
	}

	n := len(window)
	clientPct := int(math.Round(float64(client) * 100 / float64(n)))

	var b strings.Builder
	fmt.Fprintf(&b, "Over your last %d check-ins, %s came up most often (%d of %d).", n, dominant, top, n)
	fmt.Fprintf(&b, " %d%% of them were %ss and %d%% were %ss.", clientPct, models.ModeClient, 100-clientPct, models.ModeSolo)
	if top*2 > n {
		if dominant.Rank() <= models.DayMaintenance.Rank() {
			b.WriteString(" Lighter days have been the norm lately, so keep plans small and leave room to recover.")
		} else {
			b.WriteString(" Higher-capacity days have been common lately, so notice what has been supporting them.")
		}
	}

	return Insight{Text: b.String(), Count: top}, true
}

// Analyzer produces history-aware reflections from a history source.
type Analyzer struct {
	source  HistorySource
	grouper Grouper
}

// NewAnalyzer returns an analyzer reading from source. A nil grouper selects
// the default k-means strategy.
func NewAnalyzer(source HistorySource, grouper Grouper) *Analyzer {
	if grouper == nil {
		grouper = NewKMeans()
	}
	return &Analyzer{
		source:  source,
		grouper: grouper,
	}
}

// Recurrence groups all records into two clusters and reports how many
// records share a group with the most recent one. Grouping failures are
// logged and reported as absent.
func (a *Analyzer) Recurrence(records []models.HistoryRecord) (Insight, bool) {
	if len(records) < constants.MinPatternRecords {
		return Insight{}, false
	}

	points := make([][]float64, len(records))
	for i, r := range records {
		points[i] = Features(r)
	}

	labels, err := a.grouper.Group(points, constants.PatternClusters)
	if err != nil {
		logger.Warn("Pattern grouping failed", "error", err)
		return Insight{}, false
	}
	if len(labels) != len(points) {
		logger.Warn("Pattern grouping returned wrong number of labels", "labels", len(labels), "records", len(points))
		return Insight{}, false
	}

	latest := labels[len(labels)-1]
	count := 0
	for _, l := range labels {
		if l == latest {
			count++
		}
	}

	return Insight{Text: recurrenceText(count), Count: count}, true
}

func recurrenceText(count int) string {
	times := "times"
	if count == 1 {
		times = "time"
	}
	return fmt.Sprintf("This pattern has shown up %d %s in your history.", count, times)
}

// Reflect loads the full history and returns every insight that is present,
// frequency first.
func (a *Analyzer) Reflect() ([]Insight, error) {
	records, err := a.source.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	var insights []Insight
	if in, ok := Frequency(records); ok {
		insights = append(insights, in)
	}
	if in, ok := a.Recurrence(records); ok {
		insights = append(insights, in)
	}
	return insights, nil
}
