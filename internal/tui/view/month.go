package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// CalendarStyles styles the cells of the month grid and the week strip.
type CalendarStyles struct {
	Title    lipgloss.Style
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Marked   lipgloss.Style // days with events
	Selected lipgloss.Style
	Today    lipgloss.Style
}

// Calendar is the state of a date picker.
type Calendar struct {
	Selected time.Time
	Today    time.Time
	Marked   map[string]bool // keyed by YYYY-MM-DD
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

func (c Calendar) cell(d time.Time, label string, s CalendarStyles) string {
	switch {
	case sameDay(d, c.Selected):
		return s.Selected.Render(label)
	case c.Marked[dayKey(d)]:
		return s.Marked.Render(label)
	case sameDay(d, c.Today):
		return s.Today.Render(label)
	default:
		return s.Day.Render(label)
	}
}

// RenderMonth draws the Monday-first month of the selected day. Days without
// events are muted, like the picker of the original web planner.
func RenderMonth(c Calendar, s CalendarStyles) string {
	first := time.Date(c.Selected.Year(), c.Selected.Month(), 1, 0, 0, 0, 0, c.Selected.Location())
	last := first.AddDate(0, 1, -1)

	var b strings.Builder
	b.WriteString(s.Title.Render(first.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(s.Weekday.Render("Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	offset := (int(first.Weekday()) + 6) % 7
	cells := make([]string, 0, 7)
	for i := 0; i < offset; i++ {
		cells = append(cells, "  ")
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		cells = append(cells, c.cell(d, fmt.Sprintf("%2d", d.Day()), s))
		if len(cells) == 7 {
			b.WriteString(strings.Join(cells, " "))
			b.WriteString("\n")
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		b.WriteString(strings.Join(cells, " "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderWeekStrip draws the Monday-first week of the selected day on one line.
func RenderWeekStrip(c Calendar, s CalendarStyles) string {
	offset := (int(c.Selected.Weekday()) + 6) % 7
	monday := c.Selected.AddDate(0, 0, -offset)

	cells := make([]string, 7)
	for i := range cells {
		d := monday.AddDate(0, 0, i)
		label := fmt.Sprintf(" %s %2d ", d.Format("Mon")[:2], d.Day())
		cells[i] = c.cell(d, label, s)
	}
	return strings.Join(cells, "")
}
