package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
)

func (a *App) editCmd() *cobra.Command {
	var (
		title string
		start string
		end   string
		desc  string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change an event",
		Long: `Change the title, times or description of an event.
Only the given flags change. The event keeps its day.`,
		Example: `  daytimeline edit 12 --start 10:00 --end 11:00
  daytimeline edit 12 --title "Lunch with Ana and Bo"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.ensurePlanner(); err != nil {
				return err
			}

			ctx, cancel := a.ctx()
			defer cancel()
			current, err := a.planner.Get(ctx, id)
			if err != nil {
				return err
			}
			if _, err := a.planner.Load(ctx, current.Date); err != nil {
				return err
			}

			d := current.Draft()
			flags := cmd.Flags()
			if flags.Changed("title") {
				d.Title = title
			}
			if flags.Changed("start") {
				d.Start = start
			}
			if flags.Changed("end") {
				d.End = end
			}
			if flags.Changed("desc") {
				d.Description = desc
			}

			iv, err := a.planner.Save(ctx, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d: %s %s-%s %s\n",
				iv.ID, iv.Date.Format(dateutil.DateLayout), iv.Start, iv.End, iv.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (HH:MM)")
	cmd.Flags().StringVar(&desc, "desc", "", "New description")
	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.ensurePlanner(); err != nil {
				return err
			}

			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.planner.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid event id %q", s)
	}
	return id, nil
}
