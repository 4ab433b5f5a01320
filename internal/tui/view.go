package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/daytimeline/internal/i18n"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/tui/input"
	"github.com/javiermolinar/daytimeline/internal/tui/view"
)

// View renders the header, the scrolling timeline, the footer and any modal.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return "Terminal too small"
	}

	footer := m.footerState()
	base := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		view.RenderFooter(footer),
	)
	base = view.PadLines(base, m.width, m.height)

	if m.mode == ModeModal && m.modalType != ModalNone {
		return view.Overlay(base, m.renderModal(), m.width, m.height)
	}
	return base
}

// renderHeader draws the date, the day totals and the week strip.
func (m Model) renderHeader() string {
	title := m.styles.DateStyle.Render(m.date.Format("Monday, January 2, 2006"))

	stats := m.msg.T(i18n.NoEvents)
	if m.day != nil && m.day.Len() > 0 {
		stats = fmt.Sprintf("%s · %s", m.msg.T(i18n.EventCount, m.day.Len()), formatDuration(m.day.BusyMinutes()))
	}
	if m.loading {
		stats = "…"
	}
	stats = m.styles.StatsStyle.Render(stats)

	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(stats))
	top := title + strings.Repeat(" ", gap) + stats

	strip := view.RenderWeekStrip(m.calendar(m.date), m.calendarStyles())
	return lipgloss.JoinVertical(lipgloss.Left, top, strip, "")
}

// renderTimeline draws every slot of the day. The viewport windows it.
func (m Model) renderTimeline() string {
	width := max(1, m.width)
	blockWidth := max(1, width-labelWidth-gutterWidth)

	lines := make([]string, 0, m.rows.TotalLines())
	for i, row := range m.rows.Rows {
		for n := 0; n < row.Lines(); n++ {
			lines = append(lines, m.renderLine(i, row, n, blockWidth))
		}
	}
	return strings.Join(lines, "\n")
}

// blockLines returns the text shown inside the interval at slot i, one entry
// per terminal line from the top of the block.
func (m Model) blockLines(i int) []string {
	row := m.rows.Rows[i]
	if row.Interval == nil || !row.First {
		return nil
	}
	iv := row.Interval
	text := []string{fmt.Sprintf("%s  %s-%s", iv.Title, iv.Start, endLabel(iv.End))}
	if iv.Description != "" {
		text = append(text, iv.Description)
	}
	return text
}

// renderLine draws line n of slot i: time label, gutter, then the block or
// the empty grid.
func (m Model) renderLine(i int, row SlotRow, n int, blockWidth int) string {
	label := strings.Repeat(" ", labelWidth)
	if n == 0 {
		style := m.styles.LabelStyle
		text := "  :" + fmt.Sprintf("%02d", int(row.Slot.Offset)%60)
		if row.Slot.IsHourMark {
			style = m.styles.LabelHourStyle
			text = row.Slot.Label()
		}
		label = style.Render(fmt.Sprintf("%-*s", labelWidth, text))
	}

	gutter := m.styles.GridStyle.Render("│ ")
	switch {
	case i == m.cursor && n == 0:
		gutter = m.styles.NowStyle.Render("› ")
		if row.Now {
			gutter = m.styles.NowStyle.Render("» ")
		}
	case row.Now && n == 0:
		gutter = m.styles.NowStyle.Render("▶ ")
	}

	return label + gutter + m.renderCell(i, row, n, blockWidth)
}

func (m Model) renderCell(i int, row SlotRow, n int, blockWidth int) string {
	if row.Interval == nil {
		fill := strings.Repeat(" ", blockWidth)
		if row.Slot.IsHourMark && n == 0 {
			fill = strings.Repeat("┈", blockWidth)
		}
		style := m.styles.FreeStyle
		if i == m.cursor {
			style = m.styles.CursorStyle
		}
		return style.Render(fill)
	}

	style := m.styles.EventStyle
	switch {
	case row.State == SlotPast && row.Alt:
		style = m.styles.PastAltStyle
	case row.State == SlotPast:
		style = m.styles.PastStyle
	case row.Alt:
		style = m.styles.EventAltStyle
	}
	if i == m.cursor || m.selected() == row.Interval {
		style = style.Bold(true)
	}

	// Lines of a block are counted from its first slot.
	offset := n
	for j := i - 1; j >= 0 && m.rows.Rows[j].Interval == row.Interval; j-- {
		offset += m.rows.Rows[j].Lines()
	}
	text := ""
	if lines := m.blockLines(m.rows.blockStart(i)); offset < len(lines) {
		text = lines[offset]
	}
	text = ansi.Truncate(" "+text, blockWidth, "…")
	return style.Render(text + strings.Repeat(" ", max(0, blockWidth-ansi.StringWidth(text))))
}

func (m Model) footerState() view.FooterState {
	s := view.FooterState{
		Width:       m.width,
		Status:      m.statusMsg,
		Help:        m.msg.T(i18n.HelpLine),
		StatusStyle: m.styles.StatusStyle,
		HelpStyle:   m.styles.HelpStyle,
	}
	if m.statusErr {
		s.StatusStyle = m.styles.ErrorStyle
	}
	if m.mode == ModePrompt {
		s.Prompt = m.prompt.View()
		for _, c := range input.PromptMatchingCommands(m.prompt.Value(), input.Commands) {
			s.Suggestions = append(s.Suggestions, fmt.Sprintf("%-16s %s", c.Usage, c.Description))
		}
	}
	return s
}

// resizeViewport fits the viewport between header and footer.
func (m *Model) resizeViewport() {
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-headerHeight-m.footerState().Height())
	m.syncViewport()
}

// syncViewport re-renders the timeline and scrolls the cursor into view.
func (m *Model) syncViewport() {
	if m.width == 0 {
		return
	}
	m.viewport.SetContent(m.renderTimeline())

	top := m.rows.LineOf(m.cursor)
	bottom := top + m.rows.Rows[m.cursor].Lines()
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// visibleSlots is roughly how many slots fit on screen, for paging.
func (m Model) visibleSlots() int {
	// Four slots take five lines on average.
	return max(1, m.viewport.Height*4/5)
}

func endLabel(t schedule.TimeOfDay) string {
	if int(t) >= schedule.MinutesPerDay {
		return "24:00"
	}
	return t.String()
}

func formatDuration(minutes int) string {
	h, mins := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, mins)
	}
}
