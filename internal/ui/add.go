package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/scheduler"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date   string
		start  string
		end    string
		desc   string
		repeat string
		next   bool
		length time.Duration
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an event",
		Long: `Add an event to a day.

The event is rejected if it overlaps another event of the same day.
With --repeat, the RRULE is expanded from --date and all occurrences are
added together: one conflict rejects them all.
With --next, the event is placed in the first free span of --for inside the
working hours set by timeline.day_start, day_end and workdays.`,
		Example: `  daytimeline add "Standup" --start 09:00 --end 09:15
  daytimeline add "Lunch with Ana" --date tomorrow --start 12:30 --end 13:30
  daytimeline add "Gym" --start 18:00 --end 19:00 --repeat "FREQ=WEEKLY;BYDAY=MO,WE;COUNT=6"
  daytimeline add "Write report" --next --for 90m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if next {
				return a.addNext(cmd.OutOrStdout(), args[0], desc, length)
			}
			if start == "" || end == "" {
				return schedule.ErrMissingTime
			}
			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			if _, err := a.loadDay(day); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			key := day.Format(dateutil.DateLayout)

			if repeat == "" {
				ctx, cancel := a.ctx()
				defer cancel()
				iv, err := a.planner.Save(ctx, schedule.Draft{
					Date: key, Start: start, End: end, Title: args[0], Description: desc,
				})
				if err != nil {
					return err
				}
				printCreated(out, iv)
				return nil
			}

			dates, err := dateutil.Expand(repeat, day)
			if err != nil {
				return err
			}
			ivs := make([]*schedule.Interval, 0, len(dates))
			for _, d := range dates {
				iv, err := schedule.New(d.Format(dateutil.DateLayout), start, end, args[0], desc)
				if err != nil {
					return err
				}
				ivs = append(ivs, iv)
			}

			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.planner.SaveAll(ctx, ivs); err != nil {
				return err
			}
			for _, iv := range ivs {
				printCreated(out, iv)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day of the event (default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&repeat, "repeat", "", `RRULE, e.g. "FREQ=DAILY;COUNT=5"`)
	cmd.Flags().BoolVar(&next, "next", false, "Place the event in the next free working slot")
	cmd.Flags().DurationVar(&length, "for", time.Hour, "Length of the event with --next")

	cmd.MarkFlagsMutuallyExclusive("next", "start")
	cmd.MarkFlagsMutuallyExclusive("next", "repeat")
	cmd.MarkFlagsMutuallyExclusive("next", "date")

	return cmd
}

// addNext saves title in the first free working slot of length after now.
func (a *App) addNext(w io.Writer, title, desc string, length time.Duration) error {
	if err := a.ensurePlanner(); err != nil {
		return err
	}
	tc := a.config.Timeline
	s, err := scheduler.New(tc.Workdays, tc.DayStart, tc.DayEnd)
	if err != nil {
		return err
	}

	ctx, cancel := a.ctx()
	defer cancel()
	slot, err := s.Find(ctx, a.planner.Peek, a.now(), int(length/time.Minute))
	if err != nil {
		return err
	}
	iv, err := a.planner.Save(ctx, schedule.Draft{
		Date:        slot.Date.Format(dateutil.DateLayout),
		Start:       slot.Start.String(),
		End:         slot.End.String(),
		Title:       title,
		Description: desc,
	})
	if err != nil {
		return err
	}
	printCreated(w, iv)
	return nil
}

func printCreated(w io.Writer, iv *schedule.Interval) {
	fmt.Fprintf(w, "Created #%d: %s %s-%s %s\n",
		iv.ID, iv.Date.Format(dateutil.DateLayout), iv.Start, iv.End, iv.Title)
}
