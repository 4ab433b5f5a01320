// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daytimeline/internal/export"
	"github.com/javiermolinar/daytimeline/internal/llm"
	"github.com/javiermolinar/daytimeline/internal/planner"
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

// HistoryDays is how far back drafting looks for usual times.
const HistoryDays = 14

// DayLoadedMsg is sent when the selected day and its month marks are loaded.
type DayLoadedMsg struct {
	Day    *schedule.DaySchedule
	Marked []time.Time // days of the month that have events
}

// MonthLoadedMsg is sent when the event dates of a month are loaded.
type MonthLoadedMsg struct {
	Month  time.Time
	Marked []time.Time
}

// SavedMsg is sent when an interval was inserted or updated.
type SavedMsg struct {
	Interval *schedule.Interval
	Created  bool
}

// SaveFailedMsg is sent when the form could not be saved. The form stays open.
type SaveFailedMsg struct {
	Err error
}

// DeletedMsg is sent when an interval was deleted.
type DeletedMsg struct {
	ID int64
}

// DraftStartedMsg is sent when drafting starts.
type DraftStartedMsg struct{}

// DraftResultMsg is sent when the model answered.
type DraftResultMsg struct {
	Input     string
	Result    *llm.DraftResult
	Intervals []*schedule.Interval // drafts that passed validation
}

// DraftsSavedMsg is sent when drafted intervals were saved.
type DraftsSavedMsg struct {
	Count int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ClientFactory opens the LLM client used by Draft.
type ClientFactory func() (llm.Client, error)

func bounded(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// LoadDay selects date on the planner and loads the event dates of its month.
func LoadDay(p *planner.DayPlanner, date time.Time, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := bounded(timeout)
		defer cancel()

		day, err := p.Load(ctx, date)
		if err != nil {
			return ErrMsg{Err: err}
		}
		marked, err := p.EventDates(ctx, date)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DayLoadedMsg{Day: day, Marked: marked}
	}
}

// LoadMonth loads the event dates of month, for the date picker.
func LoadMonth(p *planner.DayPlanner, month time.Time, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := bounded(timeout)
		defer cancel()

		marked, err := p.EventDates(ctx, month)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return MonthLoadedMsg{Month: month, Marked: marked}
	}
}

// Save validates and writes a form draft.
func Save(p *planner.DayPlanner, d schedule.Draft, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := bounded(timeout)
		defer cancel()

		iv, err := p.Save(ctx, d)
		if err != nil {
			return SaveFailedMsg{Err: err}
		}
		return SavedMsg{Interval: iv, Created: d.ID == 0}
	}
}

// Delete removes an interval.
func Delete(p *planner.DayPlanner, id int64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := bounded(timeout)
		defer cancel()

		if err := p.Delete(ctx, id); err != nil {
			return ErrMsg{Err: err}
		}
		return DeletedMsg{ID: id}
	}
}

// Draft asks the model for interval drafts on the selected day.
func Draft(p *planner.DayPlanner, newClient ClientFactory, compact bool, input string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		client, err := newClient()
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}

		ctx, cancel := bounded(timeout)
		recent, err := p.Recent(ctx, HistoryDays)
		cancel()
		if err != nil {
			return ErrMsg{Err: err}
		}

		day := p.Day()
		res, err := llm.NewDrafter(client).Draft(context.Background(), llm.DraftRequest{
			Input:         input,
			Date:          day.Date,
			Now:           p.Now(),
			Existing:      day.Intervals(),
			Recent:        recent,
			CompactPrompt: compact,
		})
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("drafting: %w", err)}
		}

		ivs := make([]*schedule.Interval, 0, len(res.Drafts))
		for _, d := range res.Drafts {
			if iv, err := schedule.FromDraft(d); err == nil {
				ivs = append(ivs, iv)
			}
		}
		return DraftResultMsg{Input: input, Result: res, Intervals: ivs}
	}
}

// SaveDrafts inserts drafted intervals as one batch.
func SaveDrafts(p *planner.DayPlanner, ivs []*schedule.Interval, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if len(ivs) == 0 {
			return ErrMsg{Err: fmt.Errorf("no drafts to save")}
		}
		ctx, cancel := bounded(timeout)
		defer cancel()

		if err := p.SaveAll(ctx, ivs); err != nil {
			return ErrMsg{Err: err}
		}
		return DraftsSavedMsg{Count: len(ivs)}
	}
}

// CopyAgenda writes the plain agenda of day to the clipboard.
func CopyAgenda(day *schedule.DaySchedule, done string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(export.Agenda(day)); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: done}
	}
}
