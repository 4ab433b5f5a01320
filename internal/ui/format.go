package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/daytimeline/internal/schedule"
)

// PrintOpts configures interval printing.
type PrintOpts struct {
	Now          time.Time // intervals that ended before Now print muted; zero disables
	Verbose      bool      // show descriptions
	MaxDescWidth int       // 0 = derive from the terminal width
}

// CalcMaxTitleWidth returns how wide the title column may be.
func (o PrintOpts) CalcMaxTitleWidth(defaultWidth int) int {
	if o.MaxDescWidth > 0 {
		return o.MaxDescWidth
	}
	// "  #12345  HH:MM-HH:MM  " plus "  1h30m"
	available := termWidth() - 23 - 8
	if available > defaultWidth {
		return defaultWidth
	}
	if available < 10 {
		return 10
	}
	return available
}

// PrintIntervalRow writes one interval line.
func PrintIntervalRow(w io.Writer, iv *schedule.Interval, opts PrintOpts, maxWidth int) {
	title := ansi.Truncate(iv.Title, maxWidth, "...")
	span := fmt.Sprintf("%s-%s", iv.Start, iv.End)
	style := formatEvent
	if !opts.Now.IsZero() && iv.EndedBefore(opts.Now) {
		style = formatPast
	}

	fmt.Fprintf(w, "  %s  %s  %s  %s\n",
		formatMuted(fmt.Sprintf("#%-5d", iv.ID)),
		style(span),
		padRight(title, maxWidth),
		formatMuted(FormatDuration(iv.Duration())))

	if opts.Verbose && iv.Description != "" {
		for _, line := range wrap(iv.Description, maxWidth) {
			fmt.Fprintf(w, "  %s  %s\n", strings.Repeat(" ", 6+2+11), formatMuted(line))
		}
	}
}

// PrintFreeSpans writes the gaps of a day.
func PrintFreeSpans(w io.Writer, spans []schedule.Span) {
	for _, s := range spans {
		fmt.Fprintf(w, "  %s  %s-%s  %s\n",
			strings.Repeat(" ", 6),
			formatFree(s.Start.String()),
			formatFree(endLabel(s.End)),
			formatMuted(FormatDuration(s.Minutes())))
	}
}

// endLabel prints the end of the day as 24:00 rather than the clamped 23:59.
func endLabel(t schedule.TimeOfDay) string {
	if int(t) >= schedule.MinutesPerDay {
		return "24:00"
	}
	return t.String()
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

func padRight(s string, width int) string {
	if pad := width - ansi.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// wrap breaks text into lines of at most width cells.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var (
		lines []string
		line  string
	)
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case ansi.StringWidth(line)+1+ansi.StringWidth(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	return append(lines, line)
}
