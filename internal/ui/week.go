package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/i18n"
	"github.com/javiermolinar/daytimeline/internal/llm"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/summary"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		insight bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Summarize a week",
		Long: `Show event counts and busy time for each day of a week, Monday to Sunday.

With --insight the configured language model adds a short comment on the
week.`,
		Example: `  daytimeline week
  daytimeline week --date next-monday --insight`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			if err := a.ensurePlanner(); err != nil {
				return err
			}

			opts := summary.BuildWeekSummaryOptions{WeekStart: ref, IncludeInsight: insight}
			if insight {
				client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
				if err != nil {
					return fmt.Errorf("creating LLM client: %w", err)
				}
				opts.Client = client
			}

			// Each day is one store round-trip under --timeout.
			load := func(_ context.Context, d time.Time) (*schedule.DaySchedule, error) {
				ctx, cancel := a.ctx()
				defer cancel()
				return a.planner.Peek(ctx, d)
			}
			w, err := summary.BuildWeekSummary(cmd.Context(), load, opts)
			if err != nil {
				return err
			}
			a.printWeek(cmd.OutOrStdout(), w)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week (default: today)")
	cmd.Flags().BoolVar(&insight, "insight", false, "Ask the language model for a comment")
	return cmd
}

func (a *App) printWeek(w io.Writer, s *summary.WeekSummary) {
	fmt.Fprintf(w, "=== %s ===\n\n", formatHeader(fmt.Sprintf("%s - %s",
		s.Start.Format("Jan 2"), s.End.Format("Jan 2, 2006"))))

	for _, d := range s.Days {
		label := d.Date.Format("Mon 02")
		if d.Count == 0 {
			fmt.Fprintf(w, "  %s  %s\n", label, formatMuted("-"))
			continue
		}
		fmt.Fprintf(w, "  %s  %s  %s  %s\n",
			label,
			padRight(a.msg.T(i18n.EventCount, d.Count), 10),
			formatEvent(padRight(FormatDuration(d.BusyMinutes), 6)),
			formatMuted(d.Longest.Title))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s | %s", a.msg.T(i18n.EventCount, s.Count), FormatDuration(s.BusyMinutes))
	if b := s.Busiest(); b != nil {
		fmt.Fprintf(w, " | %s", b.Date.Format("Monday"))
	}
	fmt.Fprintln(w)

	if s.Insight != "" {
		fmt.Fprintf(w, "\n%s\n", s.Insight)
	}
}
