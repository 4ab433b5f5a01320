package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/i18n"
	"github.com/javiermolinar/daytimeline/internal/tui/commands"
)

const statusDuration = 3 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil

	case commands.DayLoadedMsg:
		if !dateutil.SameDay(msg.Day.Date, m.date) {
			// A later navigation already asked for another day.
			return m, nil
		}
		m.loading = false
		m.day = msg.Day
		m.date = dateutil.TruncateToDay(msg.Day.Date)
		m.setMarked(msg.Marked)
		m.rebuildRows()
		if n := len(m.rows.Rejected); n > 0 {
			r := m.rows.Rejected[0]
			m.log.Debug("intervals not placed", zap.Int("count", n), zap.Error(r.Err))
			return m.setStatus(fmt.Sprintf("%s: %s", r.Interval.Title, m.msg.Error(r.Err)), true)
		}
		return m, nil

	case commands.MonthLoadedMsg:
		// The picker may have moved on to another month meanwhile.
		if m.modalType == ModalDatePicker && dateutil.SameMonth(msg.Month, m.picker) {
			m.setMarked(msg.Marked)
		}
		return m, nil

	case commands.SavedMsg:
		m.closeModal()
		key := i18n.UpdateDone
		if msg.Created {
			key = i18n.AddDone
		}
		m.cursor = m.slotOf(msg.Interval.Start)
		m.log.Debug("saved from form", zap.Int64("id", msg.Interval.ID))
		var status tea.Cmd
		m, status = m.setStatus(m.msg.T(key, msg.Interval.Title), false)
		return m, tea.Batch(status, commands.LoadDay(m.planner, m.date, m.timeout))

	case commands.SaveFailedMsg:
		// The form stays open with the reason inline.
		m.form.err = m.msg.StoreError(msg.Err)
		return m, nil

	case commands.DeletedMsg:
		m.closeModal()
		var status tea.Cmd
		m, status = m.setStatus(m.msg.T(i18n.DeleteDone), false)
		return m, tea.Batch(status, commands.LoadDay(m.planner, m.date, m.timeout))

	case commands.DraftStartedMsg:
		m.statusMsg = m.msg.T(i18n.Drafting)
		m.statusErr = false
		return m, nil

	case commands.DraftResultMsg:
		m.draft = msg
		m.mode = ModeModal
		m.modalType = ModalDraft
		m.statusMsg = ""
		return m, nil

	case commands.DraftsSavedMsg:
		m.closeModal()
		var status tea.Cmd
		m, status = m.setStatus(m.msg.T(i18n.DraftsSaved, msg.Count), false)
		return m, tea.Batch(status, commands.LoadDay(m.planner, m.date, m.timeout))

	case commands.ErrMsg:
		m.loading = false
		m.log.Warn("command failed", zap.Error(msg.Err))
		return m.setStatus(m.msg.StoreError(msg.Err), true)

	case commands.StatusMsgCmd:
		return m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	// Let the focused input see everything else, such as cursor blinks.
	switch {
	case m.mode == ModePrompt:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	case m.modalType == ModalForm:
		return m, m.form.update(msg)
	}
	return m, nil
}

// setStatus shows a message in the footer for a few seconds.
func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.statusMsg = text
	m.statusErr = isErr
	m.statusTime = time.Now().Add(statusDuration)
	return m, tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func (m *Model) setMarked(dates []time.Time) {
	m.marked = make(map[string]bool, len(dates))
	for _, d := range dates {
		m.marked[dateutil.Key(d)] = true
	}
}

func (m *Model) rebuildRows() {
	m.rows = BuildSlotRows(m.grid, m.day, m.planner.Now(),
		m.config.Timeline.SnapUnaligned, m.config.Timeline.ShowPast)
	m.cursor = clamp(m.cursor, 0, len(m.grid)-1)
	m.syncViewport()
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.target = nil
	m.draft = commands.DraftResultMsg{}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
