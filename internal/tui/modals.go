package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/daytimeline/internal/i18n"
	"github.com/javiermolinar/daytimeline/internal/tui/view"
)

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalForm:
		return m.renderFormModal()
	case ModalConfirmDelete:
		return m.renderConfirmDeleteModal()
	case ModalDatePicker:
		return m.renderDatePickerModal()
	case ModalDraft:
		return m.renderDraftModal()
	case ModalHelp:
		return m.renderHelpModal()
	default:
		return ""
	}
}

func (m Model) renderFormModal() string {
	title := m.msg.T(i18n.AddEvent)
	if m.form.id != 0 {
		title = m.msg.T(i18n.EditEvent)
	}

	labels := [fieldCount]string{
		m.msg.T(i18n.Title), m.msg.T(i18n.Start), m.msg.T(i18n.End), m.msg.T(i18n.Description),
	}
	rows := make([]string, 0, fieldCount+3)
	rows = append(rows, m.styles.ModalLabelStyle.Render(m.form.date.Format("Mon, Jan 2 2006")))
	for i := range m.form.inputs {
		label := m.styles.ModalLabelStyle.Render(labels[i])
		field := m.form.inputs[i].View()
		if i == fieldStart || i == fieldEnd {
			if i == m.form.focus {
				field += m.styles.ModalPlaceholderStyle.Render("  +/- 15m")
			}
		}
		rows = append(rows, label+field)
	}
	if m.form.err != "" {
		rows = append(rows, "", m.styles.ModalErrorStyle.Render(m.form.err))
	}

	footer := view.Buttons(m.styles.Modal, 0,
		"[Enter] "+m.msg.T(i18n.Save), "[Esc] "+m.msg.T(i18n.Cancel))
	return m.modal(title, strings.Join(rows, "\n"), footer)
}

func (m Model) renderConfirmDeleteModal() string {
	body := ""
	if iv := m.target; iv != nil {
		body = fmt.Sprintf("%s-%s  %s", iv.Start, endLabel(iv.End), iv.Title)
	}
	footer := view.Buttons(m.styles.Modal, 0, "[y/Enter] "+m.msg.T(i18n.DeleteEvent), "[n/Esc] "+m.msg.T(i18n.Cancel))
	return m.modal(m.msg.T(i18n.DeleteEvent), body, footer)
}

func (m Model) renderDatePickerModal() string {
	body := view.RenderMonth(m.calendar(m.picker), m.calendarStyles())
	footer := m.styles.Modal.Footer.Render("←↓↑→ day/week · [ ] month · t today · Enter go · Esc close")
	return m.modal(m.msg.T(i18n.PickDate), body, footer)
}

func (m Model) renderDraftModal() string {
	var rows []string
	if res := m.draft.Result; res != nil {
		for _, d := range res.Drafts {
			rows = append(rows, fmt.Sprintf("%s  %s-%s  %s", d.Date, d.Start, d.End, d.Title))
		}
		for _, w := range res.Warnings {
			rows = append(rows, m.styles.MutedStyle.Render("! "+w))
		}
		for _, p := range res.Problems {
			rows = append(rows, m.styles.ModalErrorStyle.Render(fmt.Sprintf("#%d %s: %s", p.Index+1, p.Field, p.Message)))
		}
	}

	labels := []string{"[Enter] " + m.msg.T(i18n.Save), "[m] /draft", "[Esc] " + m.msg.T(i18n.Cancel)}
	if res := m.draft.Result; res != nil && len(res.Problems) > 0 {
		labels = labels[1:]
	}
	active := 0
	if res := m.draft.Result; res != nil && len(res.Problems) > 0 {
		active = -1
	}
	footer := view.Buttons(m.styles.Modal, active, labels...)
	return m.modal(m.msg.T(i18n.DraftTitle), strings.Join(rows, "\n"), footer)
}

// modal frames a dialog no wider than the terminal.
func (m Model) modal(title, body, footer string) string {
	return view.Modal{Title: title, Body: body, Footer: footer, MaxWidth: m.width - 2}.Render(m.styles.Modal)
}

var helpKeys = [][2]string{
	{"h/l ←/→", "day"},
	{"H/L", "week"},
	{"t", "today"},
	{"j/k ↓/↑", "slot"},
	{"tab", "next event"},
	{".", "now"},
	{"a", "add"},
	{"e/enter", "edit"},
	{"d/x", "delete"},
	{"y", "copy agenda"},
	{"c", "calendar"},
	{"/", "prompt: /draft /goto /today /copy"},
	{"q", "quit"},
}

func (m Model) renderHelpModal() string {
	rows := make([]string, len(helpKeys))
	for i, k := range helpKeys {
		rows[i] = m.styles.ModalLabelStyle.Render(k[0]) + k[1]
	}
	return m.modal(m.msg.T(i18n.Keys), strings.Join(rows, "\n"), "")
}

func (m Model) calendar(selected time.Time) view.Calendar {
	return view.Calendar{
		Selected: selected,
		Today:    m.planner.Now(),
		Marked:   m.marked,
	}
}

func (m Model) calendarStyles() view.CalendarStyles {
	return view.CalendarStyles{
		Title:    m.styles.DateStyle,
		Weekday:  m.styles.MutedStyle,
		Day:      m.styles.DayStyle,
		Marked:   m.styles.DayMarked,
		Selected: m.styles.DaySelected,
		Today:    m.styles.DayTodayStyle,
	}
}
