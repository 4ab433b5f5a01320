package llm

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/timeline"
)

// Problem is one reason a drafted event cannot be saved.
type Problem struct {
	Index   int // position in the model's events array
	Field   string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("Event %d: %s - %s", p.Index, p.Field, p.Message)
}

// FormatProblems renders problems as correction feedback for the model.
func FormatProblems(problems []Problem) string {
	var sb strings.Builder
	sb.WriteString("Your response had these errors:\n")
	for _, p := range problems {
		fmt.Fprintf(&sb, "- %s\n", p)
	}
	sb.WriteString("\nPlease correct these issues and respond again with valid JSON.")
	return sb.String()
}

// Validate checks drafted events against interval rules, the 15-minute grid,
// each other and the intervals already on the selected day.
func Validate(events []DraftedEvent, selected time.Time, existing []*schedule.Interval) []Problem {
	grid := timeline.BuildGrid()
	resp := DraftResponse{Events: events}
	drafts := resp.Drafts(selected)

	var (
		problems []Problem
		accepted []*schedule.Interval
	)
	for i, d := range drafts {
		iv, err := schedule.FromDraft(d)
		if err != nil {
			problems = append(problems, Problem{Index: i, Field: fieldOf(err), Message: err.Error()})
			continue
		}
		if !grid.Aligned(iv.Start) || !grid.Aligned(iv.End) {
			problems = append(problems, Problem{Index: i, Field: "time", Message: fmt.Sprintf("%s-%s is not on the 15-minute grid", iv.Start, iv.End)})
			continue
		}
		if dateutil.SameDay(iv.Date, selected) {
			if c := schedule.FindConflict(iv, existing, 0); c != nil {
				problems = append(problems, Problem{Index: i, Field: "overlap", Message: fmt.Sprintf("overlaps existing %s-%s %q", c.Start, c.End, c.Title)})
				continue
			}
		}
		if prev := batchConflict(iv, accepted); prev != nil {
			problems = append(problems, Problem{Index: i, Field: "overlap", Message: fmt.Sprintf("overlaps %q from the same response", prev.Title)})
			continue
		}
		accepted = append(accepted, iv)
	}
	return problems
}

func batchConflict(iv *schedule.Interval, accepted []*schedule.Interval) *schedule.Interval {
	for _, prev := range accepted {
		if dateutil.SameDay(prev.Date, iv.Date) && schedule.Overlaps(prev, iv) {
			return prev
		}
	}
	return nil
}

func fieldOf(err error) string {
	switch {
	case errors.Is(err, schedule.ErrEmptyTitle):
		return "title"
	case errors.Is(err, dateutil.ErrInvalidDateFormat):
		return "date"
	default:
		return "time"
	}
}
