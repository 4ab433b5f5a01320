package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/i18n"
)

func (a *App) showCmd() *cobra.Command {
	var (
		date    string
		free    int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the events of a day",
		Long: `Display the events of a day in start order.

Dates accept YYYY-MM-DD, today, tomorrow, yesterday, weekday names and
next-<weekday>. Events that already ended are shown muted.`,
		Example: `  daytimeline show
  daytimeline show --date tomorrow --free 30
  daytimeline show --date 2025-01-20 -v`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			sched, err := a.loadDay(day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(day.Format("Monday, January 2, 2006")))

			ivs := sched.Intervals()
			if len(ivs) == 0 {
				fmt.Fprintln(out, a.msg.T(i18n.NoEvents))
			} else {
				opts := PrintOpts{Verbose: verbose}
				if a.config.Timeline.ShowPast {
					opts.Now = a.now()
				}
				width := opts.CalcMaxTitleWidth(40)
				for _, iv := range ivs {
					PrintIntervalRow(out, iv, opts, width)
				}
				fmt.Fprintln(out)
				fmt.Fprintf(out, "%s | %s\n",
					a.msg.T(i18n.EventCount, len(ivs)),
					FormatDuration(sched.BusyMinutes()))
			}

			if cmd.Flags().Changed("free") {
				fmt.Fprintf(out, "\n%s:\n", formatHeader(a.msg.T(i18n.FreeTime)))
				PrintFreeSpans(out, sched.FreeSpans(free))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (default: today)")
	cmd.Flags().IntVar(&free, "free", 15, "Also list free spans of at least this many minutes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show event descriptions")
	return cmd
}
