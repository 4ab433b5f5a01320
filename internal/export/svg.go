package export

import (
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/timeline"
)

// SVGOptions controls the pixel timeline.
type SVGOptions struct {
	Heights timeline.Heights
	Width   int
	Snap    bool      // snap off-grid intervals instead of leaving them out
	Now     time.Time // intervals that ended before Now are drawn muted; zero disables
	Title   string
}

// DefaultSVGOptions match the web timeline the layout comes from.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Heights: timeline.DefaultHeights,
		Width:   480,
	}
}

const (
	svgLabelWidth = 56
	svgHeader     = 32
	svgBackground = "#f0f2f5"
	svgPaper      = "#ffffff"
	svgGridLine   = "#d0d4da"
	svgHourLine   = "#9aa0a6"
	svgLabel      = "#5f6368"
	svgEvent      = "#1976d2"
	svgEventPast  = "#9e9e9e"
	svgFont       = "Roboto, Arial, sans-serif"
)

// WriteSVG draws the day on the 96-slot grid and returns the intervals that
// could not be placed.
func WriteSVG(w io.Writer, day *schedule.DaySchedule, opts SVGOptions) ([]timeline.Rejected, error) {
	if opts.Width <= svgLabelWidth {
		opts.Width = DefaultSVGOptions().Width
	}
	if opts.Heights.Hour <= 0 || opts.Heights.Quarter <= 0 {
		opts.Heights = timeline.DefaultHeights
	}

	grid := timeline.BuildGrid()
	blocks, rejected := grid.Layout(opts.Heights, day.Intervals(), opts.Snap)

	height := svgHeader + int(grid.TotalHeight(opts.Heights)+0.5)
	title := opts.Title
	if title == "" {
		title = dateutil.Key(day.Date)
	}

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, height, svgBackground))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-family="%s" font-size="16" font-weight="bold" fill="%s">%s</text>
`, 8, 22, svgFont, svgLabel, html.EscapeString(title)))

	for i, slot := range grid {
		y := float64(svgHeader) + grid.SlotTop(opts.Heights, i)
		h := opts.Heights.Of(slot)
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%s" width="%d" height="%s" fill="%s"/>
`, svgLabelWidth, num(y), opts.Width-svgLabelWidth, num(h), svgPaper))

		stroke := svgGridLine
		if slot.IsHourMark {
			stroke = svgHourLine
			svg.WriteString(fmt.Sprintf(`<text x="%d" y="%s" font-family="%s" font-size="12" fill="%s">%s</text>
`, 8, num(y+h/2+4), svgFont, svgLabel, slot.Label()))
		}
		// Slot midline: block edges sit on these.
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%s" x2="%d" y2="%s" stroke="%s" stroke-width="1"/>
`, svgLabelWidth, num(y+h/2), opts.Width, num(y+h/2), stroke))
	}

	for _, b := range blocks {
		fill := svgEvent
		if !opts.Now.IsZero() && b.Interval.EndedBefore(opts.Now) {
			fill = svgEventPast
		}
		top := float64(svgHeader) + b.Span.Top
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%s" width="%d" height="%s" rx="6" fill="%s" fill-opacity="0.85"/>
`, svgLabelWidth+4, num(top), opts.Width-svgLabelWidth-8, num(b.Span.Height), fill))
		label := fmt.Sprintf("%s-%s %s", b.Interval.Start, b.Interval.End, b.Interval.Title)
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%s" font-family="%s" font-size="12" fill="#ffffff">%s</text>
`, svgLabelWidth+12, num(top+14), svgFont, html.EscapeString(label)))
	}

	svg.WriteString("</svg>\n")

	if _, err := io.WriteString(w, svg.String()); err != nil {
		return rejected, fmt.Errorf("writing svg: %w", err)
	}
	return rejected, nil
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
