// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ModalStyles groups the styles of dialogs.
type ModalStyles struct {
	Frame        lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Footer       lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
}

// Modal is a dialog drawn over the timeline.
type Modal struct {
	Title    string
	Body     string
	Footer   string
	MaxWidth int // outer width limit; 0 leaves lines as they are
}

// Render draws the modal. Body and footer lines wider than MaxWidth allows
// are cut with an ellipsis.
func (m Modal) Render(s ModalStyles) string {
	inner := 0
	if m.MaxWidth > 0 {
		inner = max(1, m.MaxWidth-s.Frame.GetHorizontalFrameSize())
	}

	parts := []string{s.Title.Render(clampLines(m.Title, inner))}
	if m.Body != "" {
		parts = append(parts, "", s.Body.Render(clampLines(m.Body, inner)))
	}
	if m.Footer != "" {
		parts = append(parts, "", s.Footer.Render(clampLines(m.Footer, inner)))
	}
	return s.Frame.Render(strings.Join(parts, "\n"))
}

func clampLines(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "…")
	}
	return strings.Join(lines, "\n")
}

// Buttons renders a row of buttons. active is the index drawn highlighted,
// -1 for none.
func Buttons(s ModalStyles, active int, labels ...string) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := s.Button
		if i == active {
			style = s.ButtonActive
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, s.Body.Render(" "))
}
