package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
)

func (a *App) datesCmd() *cobra.Command {
	var (
		month string
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Show which days of a month have events",
		Long: `Print a month calendar. Days with events are highlighted, the
others are muted, like the date picker of the timeline.`,
		Example: `  daytimeline dates
  daytimeline dates --month 2025-02 --list`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			first, _ := dateutil.MonthRange(a.now())
			if month != "" {
				var err error
				if first, _, err = dateutil.ParseMonth(month); err != nil {
					return err
				}
			}
			if err := a.ensurePlanner(); err != nil {
				return err
			}

			ctx, cancel := a.ctx()
			defer cancel()
			dates, err := a.planner.EventDates(ctx, first)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if list {
				for _, d := range dates {
					fmt.Fprintln(out, dateutil.Key(d))
				}
				return nil
			}
			printMonth(out, first, dates, a.now())
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (default: this month)")
	cmd.Flags().BoolVar(&list, "list", false, "Print one date per line instead of a calendar")
	return cmd
}

// printMonth draws a Monday-first calendar of the month containing first.
func printMonth(w io.Writer, first time.Time, dates []time.Time, today time.Time) {
	has := make(map[string]bool, len(dates))
	for _, d := range dates {
		has[dateutil.Key(d)] = true
	}

	fmt.Fprintf(w, "%s\n", formatHeader(centre(first.Format("January 2006"), 20)))
	fmt.Fprintln(w, formatMuted("Mo Tu We Th Fr Sa Su"))

	offset := (int(first.Weekday()) + 6) % 7
	var line strings.Builder
	line.WriteString(strings.Repeat("   ", offset))

	_, last := dateutil.MonthRange(first)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%2d", d.Day())
		switch {
		case has[dateutil.Key(d)]:
			cell = formatEvent(cell)
		case dateutil.SameDay(d, today):
			cell = formatHeader(cell)
		default:
			cell = formatMuted(cell)
		}
		line.WriteString(cell)

		if d.Weekday() == time.Sunday {
			fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
			line.Reset()
			continue
		}
		line.WriteByte(' ')
	}
	if rest := strings.TrimRight(line.String(), " "); rest != "" {
		fmt.Fprintln(w, rest)
	}
}

func centre(s string, width int) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
