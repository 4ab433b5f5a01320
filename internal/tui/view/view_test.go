package view

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func plainCalendarStyles() CalendarStyles {
	return CalendarStyles{
		Title:    lipgloss.NewStyle(),
		Weekday:  lipgloss.NewStyle(),
		Day:      lipgloss.NewStyle(),
		Marked:   lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle(),
		Today:    lipgloss.NewStyle(),
	}
}

func TestButtons(t *testing.T) {
	styles := ModalStyles{
		Body:         lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Button:       lipgloss.NewStyle(),
		ButtonActive: lipgloss.NewStyle().Bold(true),
	}

	view := Buttons(styles, 0, "[Enter] Save", "[Esc] Cancel")
	if sep := styles.Body.Render(" "); !strings.Contains(view, sep) {
		t.Errorf("separator does not use the body style: %q", view)
	}

	plain := ModalStyles{}
	if got := Buttons(plain, -1, "a", "b"); got != "a b" {
		t.Errorf("Buttons() = %q, want %q", got, "a b")
	}
}

func TestModalRender(t *testing.T) {
	tests := []struct {
		name  string
		modal Modal
		want  string
	}{
		{"title only", Modal{Title: "T"}, "T"},
		{"all parts", Modal{Title: "Add event", Body: "body", Footer: "footer"}, "Add event\n\nbody\n\nfooter"},
		{"clamped", Modal{Title: "Title", Body: "a long body line", MaxWidth: 6}, "Title\n\na lon…"},
		{"short lines untouched", Modal{Title: "T", Body: "ok\nfine", MaxWidth: 6}, "T\n\nok\nfine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// lipgloss pads multi-line blocks to a common width.
			if got := trimLines(tt.modal.Render(ModalStyles{})); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

func TestRenderMonth(t *testing.T) {
	c := Calendar{
		Selected: time.Date(2025, 2, 10, 0, 0, 0, 0, time.Local),
		Today:    time.Date(2025, 2, 12, 0, 0, 0, 0, time.Local),
		Marked:   map[string]bool{"2025-02-03": true},
	}
	lines := strings.Split(RenderMonth(c, plainCalendarStyles()), "\n")

	want := []string{
		"February 2025",
		"Mo Tu We Th Fr Sa Su",
		"                1  2",
		" 3  4  5  6  7  8  9",
		"10 11 12 13 14 15 16",
		"17 18 19 20 21 22 23",
		"24 25 26 27 28",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderWeekStrip(t *testing.T) {
	c := Calendar{Selected: time.Date(2025, 1, 22, 0, 0, 0, 0, time.Local)}
	got := RenderWeekStrip(c, plainCalendarStyles())
	if !strings.HasPrefix(got, " Mo 20 ") || !strings.HasSuffix(got, " Su 26 ") {
		t.Errorf("week strip = %q", got)
	}
}

func TestPadLines(t *testing.T) {
	got := PadLines("ab\nabcdef", 4, 3)
	want := "ab  \nabcd\n    "
	if got != want {
		t.Errorf("PadLines = %q, want %q", got, want)
	}
}

func TestOverlayCentersBox(t *testing.T) {
	base := strings.Repeat("..........\n", 5)
	out := Overlay(strings.TrimSuffix(base, "\n"), "XX\nXX", 10, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != ".........." {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "....XX") || !strings.HasPrefix(lines[2], "....XX") {
		t.Errorf("box not centered: %q", lines[1:3])
	}
	if lipgloss.Width(lines[1]) != 10 {
		t.Errorf("line width = %d, want 10", lipgloss.Width(lines[1]))
	}
}

func TestRenderFooter(t *testing.T) {
	s := FooterState{Width: 40, Status: "Saved", Help: "q quit"}
	if got := RenderFooter(s); got != "Saved\nq quit" {
		t.Errorf("footer = %q", got)
	}

	s.Prompt = "> /go"
	s.Suggestions = []string{"/goto <date>"}
	if s.Height() != 3 {
		t.Errorf("Height = %d, want 3", s.Height())
	}
	if got := RenderFooter(s); got != "/goto <date>\n> /go\nq quit" {
		t.Errorf("prompt footer = %q", got)
	}
}
