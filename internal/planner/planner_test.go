package planner

import (
	"testing"
	"time"

	"github.com/julianstephens/dayshape/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		in   models.CheckIn
		want int
	}{
		{"all middle", models.CheckIn{Energy: 3, Focus: 3, EmotionalLoad: 3}, 3},
		{"lowest", models.CheckIn{Energy: 1, Focus: 1, EmotionalLoad: 5}, -3},
		{"highest", models.CheckIn{Energy: 5, Focus: 5, EmotionalLoad: 1}, 9},
		{"out of range passes through", models.CheckIn{Energy: 12, Focus: -4, EmotionalLoad: 0}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.in); got != tt.want {
				t.Errorf("Score(%+v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestScore_MatchesFormulaOverGrid(t *testing.T) {
	for e := -6; e <= 8; e++ {
		for f := -6; f <= 8; f++ {
			for l := -6; l <= 8; l++ {
				c := models.CheckIn{Energy: e, Focus: f, EmotionalLoad: l}
				if got := Score(c); got != e+f-l {
					t.Fatalf("Score(%+v) = %d, want %d", c, got, e+f-l)
				}
			}
		}
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  models.DayType
	}{
		{-100, models.DaySurvival},
		{-4, models.DaySurvival},
		{3, models.DaySurvival},
		{4, models.DayMaintenance},
		{6, models.DayMaintenance},
		{7, models.DayProgress},
		{8, models.DayProgress},
		{9, models.DayFlow},
		{1000, models.DayFlow},
	}

	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestClassify_IsMonotonic(t *testing.T) {
	prev := Classify(-50).Rank()
	for s := -49; s <= 50; s++ {
		rank := Classify(s).Rank()
		if rank < 0 {
			t.Fatalf("Classify(%d) returned unknown day type", s)
		}
		if rank < prev {
			t.Fatalf("Classify(%d) rank %d dropped below previous rank %d", s, rank, prev)
		}
		prev = rank
	}
}

func TestBuild(t *testing.T) {
	plan := Build(models.CheckIn{Energy: 4, Focus: 4, EmotionalLoad: 1}, models.ModeSolo)

	if plan.Score != 7 {
		t.Errorf("expected score 7, got %d", plan.Score)
	}
	if plan.DayType != models.DayProgress {
		t.Errorf("expected Progress Day, got %q", plan.DayType)
	}
	if len(plan.Structure) != 5 {
		t.Errorf("expected 5 structure items, got %d", len(plan.Structure))
	}
	if plan.Reflection == "" {
		t.Error("expected a reflection")
	}
}

func TestOffersSupportTask(t *testing.T) {
	if OffersSupportTask(models.DaySurvival) {
		t.Error("support task should not be offered on a Survival Day")
	}
	for _, dt := range []models.DayType{models.DayMaintenance, models.DayProgress, models.DayFlow} {
		if !OffersSupportTask(dt) {
			t.Errorf("support task should be offered on %s", dt)
		}
	}
}

func TestPlan_Record(t *testing.T) {
	p := Build(models.CheckIn{Energy: 4, Focus: 4, EmotionalLoad: 1}, models.ModeSolo)
	got := p.Record(time.Date(2026, 3, 4, 21, 30, 0, 0, time.UTC))

	want := models.HistoryRecord{
		Date:          "2026-03-04",
		DayType:       models.DayProgress,
		WorkMode:      models.ModeSolo,
		CapacityScore: 7,
		Energy:        4,
		Focus:         4,
		EmotionalLoad: 1,
	}
	if got != want {
		t.Errorf("Record() = %+v, want %+v", got, want)
	}
}
