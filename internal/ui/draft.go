package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/llm"
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

// historyDays is how far back the drafter looks for usual times.
const historyDays = 14

func (a *App) draftCmd() *cobra.Command {
	var (
		date      string
		modelFlag string
		save      bool
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "draft [text]",
		Short: "Turn a note into events with a language model",
		Long: `Ask the configured language model to turn free text into events.

The model sees the selected day and the events already on it. Its answer
is checked like any other event: times on the 15-minute grid, no overlaps.
Invalid answers are sent back for correction a few times.

Without --save the drafts are only shown. With --save they are added
together after confirmation (or straight away with --yes).`,
		Example: `  daytimeline draft "lunch with Ana 12:30-13:30"
  daytimeline draft --date tomorrow "gym after work, call mum at 20:00" --save`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			sched, err := a.loadDay(day)
			if err != nil {
				return err
			}

			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}
			client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			ctx, cancel := a.ctx()
			defer cancel()
			recent, err := a.planner.Recent(ctx, historyDays)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatMuted("Drafting..."))
			// The model gets its own deadline; --timeout is for the database.
			res, err := llm.NewDrafter(client).Draft(cmd.Context(), llm.DraftRequest{
				Input:         strings.Join(args, " "),
				Date:          day,
				Now:           a.now(),
				Existing:      sched.Intervals(),
				Recent:        recent,
				CompactPrompt: llm.CompactPrompt(a.config.LLM.Provider),
			})
			if err != nil {
				return err
			}
			a.log.Debug("draft result",
				zap.Int("drafts", len(res.Drafts)),
				zap.Int("problems", len(res.Problems)))

			ivs := printDrafts(out, res, a)
			if !save {
				return nil
			}
			if len(res.Problems) > 0 {
				return fmt.Errorf("not saving: %d drafts are still invalid", len(res.Problems))
			}
			if !yes && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Save %d events?", len(ivs))) {
				fmt.Fprintln(out, "Nothing saved.")
				return nil
			}

			saveCtx, saveCancel := a.ctx()
			defer saveCancel()
			if err := a.planner.SaveAll(saveCtx, ivs); err != nil {
				return err
			}
			for _, iv := range ivs {
				printCreated(out, iv)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Selected day (default: today)")
	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().BoolVar(&save, "save", false, "Save the drafts")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before saving")
	return cmd
}

// printDrafts shows the drafts and returns the ones that form valid intervals.
func printDrafts(w io.Writer, res *llm.DraftResult, a *App) []*schedule.Interval {
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  %s %s\n", formatWarning("!"), warn)
	}

	ivs := make([]*schedule.Interval, 0, len(res.Drafts))
	for _, d := range res.Drafts {
		iv, err := schedule.FromDraft(d)
		if err != nil {
			fmt.Fprintf(w, "  %s %s %s-%s %s: %s\n", formatWarning("x"), d.Date, d.Start, d.End, d.Title, a.msg.Error(err))
			continue
		}
		fmt.Fprintf(w, "  %s %s  %s\n", dateutil.Key(iv.Date), formatEvent(spanOf(iv)), iv.Title)
		ivs = append(ivs, iv)
	}
	for _, p := range res.Problems {
		fmt.Fprintf(w, "  %s %s\n", formatWarning("x"), p)
	}
	return ivs
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	if in == nil {
		in = os.Stdin
	}
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
