// Package summary aggregates the intervals of a week.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/llm"
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

// DaySummary holds the totals of one day.
type DaySummary struct {
	Date        time.Time
	Count       int
	BusyMinutes int
	Longest     *schedule.Interval // nil on an empty day
}

// WeekSummary holds aggregated week data and optional insight.
type WeekSummary struct {
	Start       time.Time // Monday
	End         time.Time // Sunday
	Days        []DaySummary
	Count       int
	BusyMinutes int
	Insight     string
}

// Busiest returns the day with the most busy minutes, or nil when the week
// is empty. Ties go to the earlier day.
func (w *WeekSummary) Busiest() *DaySummary {
	var best *DaySummary
	for i := range w.Days {
		d := &w.Days[i]
		if d.BusyMinutes > 0 && (best == nil || d.BusyMinutes > best.BusyMinutes) {
			best = d
		}
	}
	return best
}

// BuildWeekSummaryOptions configures BuildWeekSummary.
type BuildWeekSummaryOptions struct {
	WeekStart      time.Time // any day of the week
	IncludeInsight bool
	Client         llm.Client // required with IncludeInsight
}

// WeekRange returns the Monday and Sunday of the week holding t.
func WeekRange(t time.Time) (start, end time.Time) {
	day := dateutil.TruncateToDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	start = day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// SummarizeWeek builds week totals from day schedules. Days outside the
// week of weekStart are ignored; missing days count as empty.
func SummarizeWeek(weekStart time.Time, days []*schedule.DaySchedule) *WeekSummary {
	start, end := WeekRange(weekStart)
	w := &WeekSummary{Start: start, End: end, Days: make([]DaySummary, 7)}
	for i := range w.Days {
		w.Days[i].Date = start.AddDate(0, 0, i)
	}

	for _, day := range days {
		if day == nil {
			continue
		}
		for i := range w.Days {
			if !dateutil.SameDay(w.Days[i].Date, day.Date) {
				continue
			}
			d := &w.Days[i]
			d.Count = day.Len()
			d.BusyMinutes = day.BusyMinutes()
			for _, iv := range day.Intervals() {
				if d.Longest == nil || iv.Duration() > d.Longest.Duration() {
					d.Longest = iv
				}
			}
		}
	}

	for _, d := range w.Days {
		w.Count += d.Count
		w.BusyMinutes += d.BusyMinutes
	}
	return w
}

// BuildWeekSummary loads the seven days of the requested week and optionally
// asks the model for a short comment on them.
func BuildWeekSummary(ctx context.Context, load schedule.DayLoader, opts BuildWeekSummaryOptions) (*WeekSummary, error) {
	weekStart := opts.WeekStart
	if weekStart.IsZero() {
		weekStart = time.Now()
	}

	start, _ := WeekRange(weekStart)
	days := make([]*schedule.DaySchedule, 0, 7)
	for i := range 7 {
		day, err := load(ctx, start.AddDate(0, 0, i))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", dateutil.Key(start.AddDate(0, 0, i)), err)
		}
		days = append(days, day)
	}

	summary := SummarizeWeek(start, days)

	if opts.IncludeInsight && summary.Count > 0 {
		if opts.Client == nil {
			return nil, errors.New("an LLM client is required for insight")
		}
		insight, err := opts.Client.Chat(ctx, InsightMessages(summary, days))
		if err != nil {
			return nil, fmt.Errorf("evaluating week: %w", err)
		}
		summary.Insight = strings.TrimSpace(insight)
	}

	return summary, nil
}

const insightPrompt = `You review a person's week planned on a 15-minute timeline.
Reply with at most three short sentences of plain text: where the week is
overloaded, where there is room, and one concrete suggestion. No lists.`

// InsightMessages renders the week for the model.
func InsightMessages(w *WeekSummary, days []*schedule.DaySchedule) []llm.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Week %s to %s, %d events, %d busy minutes.\n",
		dateutil.Key(w.Start), dateutil.Key(w.End), w.Count, w.BusyMinutes)
	for _, day := range days {
		if day == nil || day.Len() == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s %s:\n", day.Date.Format("Monday"), dateutil.Key(day.Date))
		for _, iv := range day.Intervals() {
			fmt.Fprintf(&b, "- %s-%s %s\n", iv.Start, iv.End, iv.Title)
		}
	}
	return []llm.Message{
		{Role: llm.RoleSystem, Content: insightPrompt},
		{Role: llm.RoleUser, Content: b.String()},
	}
}
