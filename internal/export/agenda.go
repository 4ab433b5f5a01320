package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

// WriteAgenda writes the day as plain text, one interval per line:
//
//	2025-01-20 Monday
//	09:00-10:00  Standup
//	12:30-13:30  Lunch with Ana (bring the contract)
func WriteAgenda(w io.Writer, day *schedule.DaySchedule) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", dateutil.Key(day.Date), day.Date.Format("Monday"))
	for _, iv := range day.Intervals() {
		fmt.Fprintf(&sb, "%s-%s  %s", iv.Start, iv.End, iv.Title)
		if iv.Description != "" {
			fmt.Fprintf(&sb, " (%s)", iv.Description)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Agenda returns WriteAgenda's output as a string.
func Agenda(day *schedule.DaySchedule) string {
	var sb strings.Builder
	_ = WriteAgenda(&sb, day)
	return sb.String()
}
