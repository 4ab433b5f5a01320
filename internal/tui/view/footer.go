package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterState holds the strings needed to render the footer section.
type FooterState struct {
	Width       int
	Status      string
	Help        string
	Prompt      string   // rendered prompt input, empty when closed
	Suggestions []string // prompt command hints
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
}

// Height returns the number of lines RenderFooter produces.
func (s FooterState) Height() int {
	if s.Prompt != "" {
		return 2 + len(s.Suggestions)
	}
	return 2
}

// RenderFooter renders the status and help lines, or the prompt with its
// suggestions when it is open.
func RenderFooter(s FooterState) string {
	fit := func(line string) string {
		if s.Width <= 0 {
			return line
		}
		return ansi.Truncate(line, s.Width, "…")
	}

	lines := make([]string, 0, s.Height())
	if s.Prompt != "" {
		for _, hint := range s.Suggestions {
			lines = append(lines, fit(s.HelpStyle.Render(hint)))
		}
		lines = append(lines, fit(s.Prompt))
	} else {
		lines = append(lines, fit(s.StatusStyle.Render(s.Status)))
	}
	lines = append(lines, fit(s.HelpStyle.Render(s.Help)))
	return strings.Join(lines, "\n")
}
