package summary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/dayshape/internal/constants"
	"github.com/julianstephens/dayshape/internal/models"
	"github.com/julianstephens/dayshape/internal/planner"
)

const (
	title          = "Daily Capacity Plan"
	closingMessage = "Remember: today's plan is shaped around your capacity, not your willpower."
)

// ErrNoEssential is returned by Write when there is no essential task to export
var ErrNoEssential = errors.New("an essential task is required before exporting")

// Input is everything the exported summary is rendered from
type Input struct {
	Plan  planner.Plan
	Tasks models.TaskSet
	Date  time.Time
}

// Render produces the plain-text day summary. It performs no I/O and is
// deterministic for a given input.
func Render(in Input) string {
	p := in.Plan

	lines := []string{
		title,
		fmt.Sprintf("Date: %s", in.Date.Format(constants.DateFormat)),
		"",
		fmt.Sprintf("Work mode: %s", p.WorkMode),
		fmt.Sprintf("Day type: %s", p.DayType),
		fmt.Sprintf("Capacity score: %d (energy %d, focus %d, emotional load %d)",
			p.Score, p.CheckIn.Energy, p.CheckIn.Focus, p.CheckIn.EmotionalLoad),
		"",
		"Structure:",
	}
	for _, item := range p.Structure {
		lines = append(lines, "- "+item)
	}

	lines = append(lines, "", "Tasks:")
	// Essential always prints; support and optional only when present.
	lines = append(lines, "Essential: "+in.Tasks.Essential)
	if present(in.Tasks.Support) {
		lines = append(lines, "Support: "+*in.Tasks.Support)
	}
	if present(in.Tasks.Optional) {
		lines = append(lines, "Optional: "+*in.Tasks.Optional)
	}

	lines = append(lines, "", closingMessage)
	return strings.Join(lines, "\n")
}

// FileName returns the export file name for a calendar day
func FileName(date time.Time) string {
	return constants.ExportFilePrefix + date.Format(constants.DateFormat) + constants.ExportFileSuffix
}

// Exportable reports ErrNoEssential for a task set that cannot be exported
func Exportable(tasks models.TaskSet) error {
	if strings.TrimSpace(tasks.Essential) == "" {
		return ErrNoEssential
	}
	return nil
}

// Write renders the summary into dir and returns the written path.
// A summary without an essential task is not written.
func Write(dir string, in Input) (string, error) {
	if err := Exportable(in.Tasks); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(in.Date))
	if err := os.WriteFile(path, []byte(Render(in)+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	return path, nil
}

func present(s *string) bool {
	return s != nil && *s != ""
}
