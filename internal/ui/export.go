package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/export"
	"github.com/javiermolinar/daytimeline/internal/timeline"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		date   string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a day as iCalendar, SVG or text",
		Long: `Export the events of a day.

  ics   iCalendar, one VEVENT per event with floating local times
  svg   the day drawn on the 96-slot timeline
  txt   plain agenda, one event per line`,
		Example: `  daytimeline export --format ics -o today.ics
  daytimeline export --date 2025-01-20 --format svg > day.svg`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			sched, err := a.loadDay(day)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			switch strings.ToLower(format) {
			case "ics", "ical":
				return export.WriteICS(w, sched.Intervals(), a.now())
			case "svg":
				opts := export.DefaultSVGOptions()
				opts.Heights = timeline.Heights{
					Hour:    a.config.Timeline.HourHeight,
					Quarter: a.config.Timeline.QuarterHeight,
				}
				opts.Snap = a.config.Timeline.SnapUnaligned
				opts.Title = day.Format("Monday, January 2, 2006")
				if a.config.Timeline.ShowPast {
					opts.Now = a.now()
				}
				rejected, err := export.WriteSVG(w, sched, opts)
				if err != nil {
					return err
				}
				for _, r := range rejected {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s #%d %s: %s\n",
						formatWarning("skipped"), r.Interval.ID, r.Interval.Title, a.msg.Error(r.Err))
				}
				return nil
			case "txt", "text":
				return export.WriteAgenda(w, sched)
			default:
				return fmt.Errorf("unknown format %q (want ics, svg or txt)", format)
			}
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to export (default: today)")
	cmd.Flags().StringVarP(&format, "format", "f", "ics", "Output format: ics, svg or txt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
