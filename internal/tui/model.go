package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/javiermolinar/daytimeline/internal/config"
	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/i18n"
	"github.com/javiermolinar/daytimeline/internal/llm"
	"github.com/javiermolinar/daytimeline/internal/planner"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/timeline"
	"github.com/javiermolinar/daytimeline/internal/tui/commands"
	"github.com/javiermolinar/daytimeline/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalForm
	ModalConfirmDelete
	ModalDatePicker
	ModalDraft
	ModalHelp
)

// Layout constants, in terminal lines and cells.
const (
	headerHeight = 3
	labelWidth   = 6
	gutterWidth  = 2
	minWidth     = 30
	minHeight    = 10
)

// Options are the runtime dependencies of the TUI that do not come from the
// config file.
type Options struct {
	Log     *zap.Logger
	Msg     *i18n.Printer
	NoColor bool
	Timeout time.Duration // bound for each store round-trip
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	planner   *planner.DayPlanner
	config    *config.Config
	msg       *i18n.Printer
	log       *zap.Logger
	timeout   time.Duration
	newClient commands.ClientFactory

	styles *Styles
	grid   timeline.Grid

	// State
	date    time.Time // selected day
	day     *schedule.DaySchedule
	rows    SlotRows
	marked  map[string]bool // days of the selected month with events
	cursor  int             // slot index
	mode    Mode
	loading bool

	// Modal state
	modalType ModalType
	form      eventForm
	target    *schedule.Interval // interval to delete
	picker    time.Time          // date under the picker cursor
	draft     commands.DraftResultMsg

	// Components
	prompt   textinput.Model
	viewport viewport.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClientFactory replaces the LLM client used by /draft.
func WithClientFactory(f commands.ClientFactory) ModelOption {
	return func(m *Model) {
		m.newClient = f
	}
}

// New creates a new TUI model on the planner's clock.
func New(p *planner.DayPlanner, cfg *config.Config, opts Options, modelOpts ...ModelOption) Model {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	msg := opts.Msg
	if msg == nil {
		msg = i18n.New(cfg.UI.Locale)
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		log.Warn("theme not found, using default", zap.String("theme", cfg.UI.Theme), zap.Error(err))
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	prompt := textinput.New()
	prompt.Placeholder = "/draft lunch with Ana 12:30-13:30"
	prompt.Prompt = "> "
	prompt.PromptStyle = styles.PromptStyle

	m := Model{
		planner: p,
		config:  cfg,
		msg:     msg,
		log:     log,
		timeout: opts.Timeout,
		newClient: func() (llm.Client, error) {
			return llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
		},
		styles: styles,
		grid:   timeline.BuildGrid(),
		date:   dateutil.TruncateToDay(p.Now()),
		marked: map[string]bool{},
		form: newEventForm(styles, [fieldCount]string{
			msg.T(i18n.Title), "HH:MM", "HH:MM", msg.T(i18n.Description),
		}),
		prompt:   prompt,
		viewport: viewport.New(0, 0),
		loading:  true,
	}
	m.cursor = m.scrollToSlot()
	m.rebuildRows()

	for _, opt := range modelOpts {
		opt(&m)
	}
	return m
}

// scrollToSlot is where the cursor starts: the current time on today,
// otherwise timeline.scroll_to.
func (m Model) scrollToSlot() int {
	now := m.planner.Now()
	if dateutil.SameDay(m.date, now) {
		return (now.Hour()*60 + now.Minute()) / timeline.SlotMinutes
	}
	if t, err := schedule.ParseTime(m.config.Timeline.ScrollTo); err == nil {
		return int(m.grid.Snap(t)) / timeline.SlotMinutes
	}
	return 8 * 60 / timeline.SlotMinutes
}

// Init loads the selected day.
func (m Model) Init() tea.Cmd {
	return commands.LoadDay(m.planner, m.date, m.timeout)
}

// Run starts the TUI.
func Run(p *planner.DayPlanner, cfg *config.Config, opts Options) error {
	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	model := New(p, cfg, opts)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
