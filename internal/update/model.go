package update

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/ganttd/internal/arrows"
	"github.com/sandeepkv93/ganttd/internal/critpath"
	"github.com/sandeepkv93/ganttd/internal/interaction"
	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/logging"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/palette"
	"github.com/sandeepkv93/ganttd/internal/scheduler"
	"github.com/sandeepkv93/ganttd/internal/storage"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

const (
	labelWidth   = 24
	maxToasts    = 4
	reservedRows = 14
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	PrevPeriod string
	NextPeriod string
	ZoomDay    string
	ZoomWeek   string
	ZoomMonth  string
	ScaleUp    string
	ScaleDown  string
	Critical   string
	Today      string
	Reload     string
	Help       string
	Quit       string
}

func DefaultKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		PrevPeriod: "h",
		NextPeriod: "l",
		ZoomDay:    "d",
		ZoomWeek:   "w",
		ZoomMonth:  "m",
		ScaleUp:    "+",
		ScaleDown:  "-",
		Critical:   "c",
		Today:      "t",
		Reload:     "r",
		Help:       "?",
		Quit:       "q",
	}
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Toast struct {
	ID       string
	Text     string
	IsError  bool
	ExpireAt time.Time
}

// Model is the bubbletea model of the chart editor. Tasks hold the
// optimistic dates: a drag release writes them before the store confirms.
type Model struct {
	Repo      storage.Repository
	Scheduler *scheduler.Engine
	Logger    *logging.Logger
	Colors    palette.Palette

	TimeView  timeaxis.View
	ProjectID string
	Sort      layout.SortOrder

	Projects []model.Project
	Tasks    []model.Task
	Deps     []model.Dependency

	Critical   *critpath.Analyzer
	Controller *interaction.Controller

	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Toasts      []Toast
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	Loaded      bool

	// derived from the fields above by rebuild
	rows    []model.Task
	chart   layout.Chart
	curves  []arrows.Curve
	path    critpath.Result
	buckets map[string]int

	pending     map[string]int
	inflight    map[string]interaction.Change
	pendingName string
	cycleKey    string
	detailsKey  string

	width   int
	height  int
	scrollX int
	scrollY int

	commandInput    textinput.Model
	helpModel       help.Model
	commitSpinner   spinner.Model
	detailsViewport viewport.Model
	spinnerActive   bool

	stateFilePath string
	toastTTL      time.Duration
	commitTimeout time.Duration
	toastSeq      int
	now           func() time.Time
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// DataLoadedMsg carries a full reload of the store.
type DataLoadedMsg struct {
	Projects []model.Project
	Tasks    []model.Task
	Deps     []model.Dependency
	Err      error
}

// CommitResultMsg reports the outcome of persisting one changed task.
type CommitResultMsg struct {
	Change interaction.Change
	Err    error
}

// MutationResultMsg reports a palette command that wrote to the store.
type MutationResultMsg struct {
	Message string
	Err     error
}

type ToastExpiredMsg struct {
	Event scheduler.ExpiryEvent
}

func NewModel(repo storage.Repository) Model {
	return NewModelWithConfig(repo, nil, logging.Nop(), palette.Default(), DefaultRuntimeConfig())
}

func NewModelWithConfig(repo storage.Repository, engine *scheduler.Engine, logger *logging.Logger, colors palette.Palette, cfg RuntimeConfig) Model {
	if logger == nil {
		logger = logging.Nop()
	}
	m := Model{
		Repo:          repo,
		Scheduler:     engine,
		Logger:        logger,
		Colors:        colors,
		TimeView:      cfg.View,
		Sort:          cfg.Sort,
		Critical:      critpath.NewAnalyzer(cfg.ShowCritical),
		Keys:          DefaultKeyMap(),
		pending:       make(map[string]int),
		inflight:      make(map[string]interaction.Change),
		pendingName:   cfg.Project,
		stateFilePath: strings.TrimSpace(cfg.StateFile),
		toastTTL:      cfg.ToastTTL,
		commitTimeout: cfg.CommitTimeout,
		now:           time.Now,
		width:         120,
		height:        40,
	}
	if m.TimeView.Reference.IsZero() {
		m.TimeView.Reference = model.Day(m.now())
	}
	if m.Sort == "" {
		m.Sort = layout.SortByStart
	}
	if m.stateFilePath != "" {
		if state, ok, err := loadViewState(m.stateFilePath); err != nil {
			m.Logger.Warn("load view state", "path", m.stateFilePath, "error", err)
		} else if ok {
			m.applyViewState(state)
		}
	}
	m.Controller = interaction.NewController(m.TimeView.Zoom, timeaxis.ColumnWidth(m.TimeView.Zoom, m.TimeView.Scale))
	m.initBubbleComponents()
	m.rebuild()
	m.recenter()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "zoom week"
	m.commandInput.CharLimit = 256

	m.helpModel = help.New()

	m.commitSpinner = spinner.New()
	m.commitSpinner.Spinner = spinner.Dot

	m.detailsViewport = viewport.New(m.width-4, 7)
}

// SetNow replaces the clock used for today markers and toast expiry.
func (m *Model) SetNow(now func() time.Time) {
	if now != nil {
		m.now = now
	}
}

// Chart exposes the last laid-out chart.
func (m Model) Chart() layout.Chart { return m.chart }

// Rows returns the tasks on screen in row order.
func (m Model) Rows() []model.Task { return append([]model.Task(nil), m.rows...) }

// CriticalPath returns the last computed critical path.
func (m Model) CriticalPath() critpath.Result { return m.path }

func (m Model) PendingCommits() int {
	n := 0
	for _, c := range m.pending {
		n += c
	}
	return n
}

func (m Model) TaskByID(id string) (model.Task, bool) {
	for _, t := range m.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
