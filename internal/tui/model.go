package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayshape/internal/models"
	"github.com/julianstephens/dayshape/internal/patterns"
	"github.com/julianstephens/dayshape/internal/planner"
	"github.com/julianstephens/dayshape/internal/storage"
	"github.com/julianstephens/dayshape/internal/tui/components/plan"
)

type SessionState int

const (
	StateCheckIn SessionState = iota
	StatePlan
	StateClosing
	StateDone
)

// Model is one planning session: check-in form, plan view, closing questions.
type Model struct {
	store     storage.Provider
	analyzer  *patterns.Analyzer
	exportDir string
	date      time.Time
	state     SessionState
	keys      KeyMap
	help      help.Model
	form      *huh.Form
	values    *CheckInValues
	closing   *ClosingValues
	planModel plan.Model
	plan      planner.Plan
	tasks     models.TaskSet
	logged    bool
	status    string
	err       error
	quitting  bool
	width     int
	height    int
}

// NewModel starts a session dated date. Exports are written to exportDir.
func NewModel(store storage.Provider, exportDir string, date time.Time) Model {
	values := &CheckInValues{}
	return Model{
		store:     store,
		analyzer:  patterns.NewAnalyzer(store, nil),
		exportDir: exportDir,
		date:      date,
		state:     StateCheckIn,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		form:      NewCheckInForm(values),
		values:    values,
		closing:   &ClosingValues{},
		planModel: plan.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// State reports which step of the session is showing
func (m Model) State() SessionState {
	return m.state
}

func (m Model) Err() error {
	return m.err
}

// Logged reports whether this session's check-in was appended to history
func (m Model) Logged() bool {
	return m.logged
}
