package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/i18n"
	"github.com/javiermolinar/daytimeline/internal/llm"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/timeline"
	"github.com/javiermolinar/daytimeline/internal/tui/commands"
	"github.com/javiermolinar/daytimeline/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.log.Debug("key", zap.String("key", msg.String()), zap.Int("mode", int(m.mode)))

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Days
	case "h", "left":
		return m.gotoDay(m.date.AddDate(0, 0, -1))
	case "l", "right":
		return m.gotoDay(m.date.AddDate(0, 0, 1))
	case "H", "shift+left":
		return m.gotoDay(m.date.AddDate(0, 0, -7))
	case "L", "shift+right":
		return m.gotoDay(m.date.AddDate(0, 0, 7))
	case "t":
		return m.gotoDay(m.planner.Now())

	// Slots
	case "j", "down":
		m.moveCursor(m.cursor + 1)
	case "k", "up":
		m.moveCursor(m.cursor - 1)
	case "pgdown", "ctrl+d":
		m.moveCursor(m.cursor + m.visibleSlots())
	case "pgup", "ctrl+u":
		m.moveCursor(m.cursor - m.visibleSlots())
	case "g", "home":
		m.moveCursor(0)
	case "G", "end":
		m.moveCursor(len(m.grid) - 1)
	case ".":
		if i := m.rows.NowIndex(); i >= 0 {
			m.moveCursor(i)
		}
	case "tab":
		if i := m.rows.NextBlock(m.cursor); i >= 0 {
			m.moveCursor(i)
		}
	case "shift+tab":
		if i := m.rows.PrevBlock(m.cursor); i >= 0 {
			m.moveCursor(i)
		}

	// Actions
	case "a":
		return m.openForm(nil)
	case "e", "enter":
		return m.openForm(m.selected())
	case "d", "x":
		iv := m.selected()
		if iv == nil {
			return m.setStatus(m.msg.T(i18n.NoEventHere), true)
		}
		m.target = iv
		m.mode = ModeModal
		m.modalType = ModalConfirmDelete
	case "y":
		if m.day == nil {
			return m, nil
		}
		return m, commands.CopyAgenda(m.day, m.msg.T(i18n.Copied))
	case "c":
		m.picker = m.date
		m.mode = ModeModal
		m.modalType = ModalDatePicker
	case "/":
		return m.openPrompt("/")
	case "?":
		m.mode = ModeModal
		m.modalType = ModalHelp
	}
	return m, nil
}

// handlePromptKeys handles keys while the command prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "tab":
		if value, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		line := m.prompt.Value()
		m.closePrompt()
		return m.runPrompt(line)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) runPrompt(line string) (tea.Model, tea.Cmd) {
	name, arg := input.Parse(line)
	switch name {
	case "":
		return m, nil
	case "/draft":
		if arg == "" {
			return m.openPrompt("/draft ")
		}
		compact := llm.CompactPrompt(m.config.LLM.Provider)
		return m, tea.Batch(
			func() tea.Msg { return commands.DraftStartedMsg{} },
			commands.Draft(m.planner, m.newClient, compact, arg, m.timeout),
		)
	case "/goto":
		date, err := dateutil.ParseRelativeDate(arg, m.planner.Now())
		if err != nil {
			return m.setStatus(m.msg.Error(err), true)
		}
		return m.gotoDay(date)
	case "/today":
		return m.gotoDay(m.planner.Now())
	case "/copy":
		if m.day == nil {
			return m, nil
		}
		return m, commands.CopyAgenda(m.day, m.msg.T(i18n.Copied))
	default:
		return m.setStatus(m.msg.T(i18n.UnknownCommand, name), true)
	}
}

// handleModalKeys handles keys for the open modal.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalForm:
		return m.handleFormKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmKeys(msg)
	case ModalDatePicker:
		return m.handlePickerKeys(msg)
	case ModalDraft:
		return m.handleDraftKeys(msg)
	default:
		m.closeModal()
		return m, nil
	}
}

// handleFormKeys handles the add/edit form. Printable keys go to the focused
// input, except +/- on a time field.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "tab", "down":
		return m, m.form.next()
	case "shift+tab", "up":
		return m, m.form.prev()
	case "enter", "ctrl+s":
		return m.submitForm()
	case "+", "=":
		if m.form.onTimeField() {
			m.form.step(stepMinutes)
			return m, nil
		}
	case "-", "_":
		if m.form.onTimeField() {
			m.form.step(-stepMinutes)
			return m, nil
		}
	}
	return m, m.form.update(msg)
}

// submitForm catches missing fields locally and hands the draft to the
// planner, which applies the grid policy and checks overlap.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	d := m.form.draft()
	if _, err := schedule.FromDraft(d); err != nil {
		m.form.err = m.msg.Error(err)
		return m, nil
	}
	m.form.err = ""
	return m, commands.Save(m.planner, d, m.timeout)
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.target == nil {
			m.closeModal()
			return m, nil
		}
		return m, commands.Delete(m.planner, m.target.ID, m.timeout)
	case "n", "esc", "q":
		m.closeModal()
	}
	return m, nil
}

func (m Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next := m.picker
	switch msg.String() {
	case "esc", "q":
		m.closeModal()
		// The picker may have loaded marks of another month.
		return m, commands.LoadDay(m.planner, m.date, m.timeout)
	case "enter":
		m.closeModal()
		return m.gotoDay(m.picker)
	case "h", "left":
		next = next.AddDate(0, 0, -1)
	case "l", "right":
		next = next.AddDate(0, 0, 1)
	case "k", "up":
		next = next.AddDate(0, 0, -7)
	case "j", "down":
		next = next.AddDate(0, 0, 7)
	case "[", "pgup":
		next = next.AddDate(0, -1, 0)
	case "]", "pgdown":
		next = next.AddDate(0, 1, 0)
	case "t":
		next = dateutil.TruncateToDay(m.planner.Now())
	default:
		return m, nil
	}

	monthChanged := next.Year() != m.picker.Year() || next.Month() != m.picker.Month()
	m.picker = next
	if monthChanged {
		return m, commands.LoadMonth(m.planner, next, m.timeout)
	}
	return m, nil
}

func (m Model) handleDraftKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "a":
		if m.draft.Result != nil && len(m.draft.Result.Problems) > 0 {
			return m.setStatus(m.msg.T(i18n.DraftInvalid), true)
		}
		return m, commands.SaveDrafts(m.planner, m.draft.Intervals, m.timeout)
	case "m":
		text := m.draft.Input
		m.closeModal()
		return m.openPrompt("/draft " + text)
	case "esc", "c", "q":
		m.closeModal()
	}
	return m, nil
}

// gotoDay selects date and loads it. The cursor keeps its slot.
func (m Model) gotoDay(date time.Time) (tea.Model, tea.Cmd) {
	m.date = dateutil.TruncateToDay(date)
	m.loading = true
	return m, commands.LoadDay(m.planner, m.date, m.timeout)
}

// openForm opens the form for iv, or for a new event at the cursor.
func (m Model) openForm(iv *schedule.Interval) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if iv != nil {
		cmd = m.form.openEdit(iv)
	} else {
		cmd = m.form.openNew(m.date, m.grid[m.cursor].Offset)
	}
	m.mode = ModeModal
	m.modalType = ModalForm
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m Model) openPrompt(value string) (tea.Model, tea.Cmd) {
	m.mode = ModePrompt
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.resizeViewport()
	return m, tea.Batch(m.prompt.Focus(), textinput.Blink)
}

func (m *Model) closePrompt() {
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.resizeViewport()
}

// selected returns the interval under the cursor, or nil.
func (m Model) selected() *schedule.Interval {
	if m.cursor < 0 || m.cursor >= len(m.rows.Rows) {
		return nil
	}
	return m.rows.Rows[m.cursor].Interval
}

func (m *Model) moveCursor(slot int) {
	m.cursor = clamp(slot, 0, len(m.grid)-1)
	m.syncViewport()
}

func (m Model) slotOf(t schedule.TimeOfDay) int {
	return clamp(int(m.grid.Snap(t))/timeline.SlotMinutes, 0, len(m.grid)-1)
}
