// Package tui provides the interactive day timeline.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/daytimeline/internal/tui/theme"
	"github.com/javiermolinar/daytimeline/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Header
	DateStyle     lipgloss.Style
	StatsStyle    lipgloss.Style
	DayStyle      lipgloss.Style
	DayMarked     lipgloss.Style
	DaySelected   lipgloss.Style
	DayTodayStyle lipgloss.Style

	// Timeline rows
	LabelStyle     lipgloss.Style
	LabelHourStyle lipgloss.Style
	GridStyle      lipgloss.Style
	NowStyle       lipgloss.Style
	CursorStyle    lipgloss.Style
	FreeStyle      lipgloss.Style
	EventStyle     lipgloss.Style
	EventAltStyle  lipgloss.Style
	PastStyle      lipgloss.Style
	PastAltStyle   lipgloss.Style
	MutedStyle     lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style

	// Modal
	Modal                 view.ModalStyles
	ModalLabelStyle       lipgloss.Style
	ModalErrorStyle       lipgloss.Style
	ModalInputTextStyle   lipgloss.Style
	ModalInputCursorStyle lipgloss.Style
	ModalPlaceholderStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.DateStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	s.StatsStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.DayStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.DayMarked = lipgloss.NewStyle().Foreground(p.Event).Bold(true)
	s.DaySelected = lipgloss.NewStyle().
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Bold(true)
	s.DayTodayStyle = lipgloss.NewStyle().Foreground(p.Current).Underline(true)

	s.LabelStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.LabelHourStyle = lipgloss.NewStyle().Foreground(p.Fg).Bold(true)
	s.GridStyle = lipgloss.NewStyle().Foreground(p.Grid)
	s.NowStyle = lipgloss.NewStyle().Foreground(p.Current).Bold(true)
	s.CursorStyle = lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Fg)
	s.FreeStyle = lipgloss.NewStyle().Foreground(p.Grid)
	s.EventStyle = lipgloss.NewStyle().Background(p.EventBg).Foreground(p.TextOnEvent)
	s.EventAltStyle = lipgloss.NewStyle().Background(p.EventBgAlt).Foreground(p.TextOnEvent)
	s.PastStyle = lipgloss.NewStyle().Background(p.PastBg).Foreground(p.FgMuted)
	s.PastAltStyle = lipgloss.NewStyle().Background(p.PastBgAlt).Foreground(p.FgMuted)
	s.MutedStyle = lipgloss.NewStyle().Foreground(p.FgMuted)

	s.StatusStyle = lipgloss.NewStyle().Foreground(p.Fg)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	s.HelpStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.PromptStyle = lipgloss.NewStyle().Foreground(p.Accent)

	s.Modal = view.ModalStyles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Modal.Border).
			Background(p.Modal.Bg).
			Foreground(p.Modal.Text).
			Padding(1, 2),
		Title:        lipgloss.NewStyle().Foreground(p.Modal.Highlight).Bold(true),
		Body:         lipgloss.NewStyle().Foreground(p.Modal.Text),
		Footer:       lipgloss.NewStyle().Foreground(p.Modal.Muted),
		Button:       lipgloss.NewStyle().Foreground(p.Modal.Muted).Padding(0, 2),
		ButtonActive: lipgloss.NewStyle().Foreground(p.TextOnAccent).Background(p.Accent).Bold(true).Padding(0, 2),
	}
	s.ModalLabelStyle = lipgloss.NewStyle().Foreground(p.Modal.Muted).Width(14)
	s.ModalErrorStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	s.ModalInputTextStyle = lipgloss.NewStyle().Foreground(p.Modal.Text)
	s.ModalInputCursorStyle = lipgloss.NewStyle().Foreground(p.Accent)
	s.ModalPlaceholderStyle = lipgloss.NewStyle().Foreground(p.Modal.Muted)

	return s
}

// Palette returns the colors the styles were built from.
func (s *Styles) Palette() *theme.Palette {
	return s.palette
}
