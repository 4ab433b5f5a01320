package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/export"
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

func (a *App) importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file.ics]",
		Short: "Import events from an iCalendar file",
		Long: `Import the timed events of an iCalendar file.

All-day events and events that cross midnight are skipped. Repeating
events with COUNT or UNTIL are expanded. The import is all or nothing: if
any event overlaps another one, nothing is saved.`,
		Example: `  daytimeline import ~/Downloads/work.ics --dry-run
  daytimeline import work.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			res, err := export.ReadICS(f, time.Local)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printImport(out, res, a)
			if dryRun {
				fmt.Fprintln(out, formatMuted("(dry run, nothing saved)"))
				return nil
			}
			if len(res.Intervals) == 0 {
				return nil
			}

			if err := a.ensurePlanner(); err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.planner.SaveAll(ctx, res.Intervals); err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d events from %s\n", len(res.Intervals), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the events without saving them")
	return cmd
}

func printImport(w io.Writer, res *export.ImportResult, a *App) {
	var current string
	for _, iv := range res.Intervals {
		if key := dateutil.Key(iv.Date); key != current {
			current = key
			fmt.Fprintf(w, "%s\n", formatHeader(iv.Date.Format("Monday, January 2, 2006")))
		}
		fmt.Fprintf(w, "  %s  %s\n", formatEvent(spanOf(iv)), iv.Title)
	}
	for _, s := range res.Skipped {
		name := s.Summary
		if name == "" {
			name = s.UID
		}
		fmt.Fprintf(w, "%s %s: %s\n", formatWarning("skipped"), name, a.msg.Error(s.Err))
	}
}

func spanOf(iv *schedule.Interval) string {
	return fmt.Sprintf("%s-%s", iv.Start, iv.End)
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return absPath, nil
}
