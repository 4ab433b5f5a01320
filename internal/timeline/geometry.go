package timeline

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/daytimeline/internal/schedule"
)

// Geometry errors.
var (
	ErrUnaligned = errors.New("time is not on a 15-minute slot boundary")
	ErrEmptySpan = errors.New("span must start before it ends")
)

// Heights holds the rendered height of each kind of slot.
// Units are up to the renderer: pixels for SVG, lines for the terminal.
type Heights struct {
	Hour    float64
	Quarter float64
}

// DefaultHeights are the pixel heights of the original web timeline.
var DefaultHeights = Heights{Hour: 40, Quarter: 20}

// TerminalHeights render an hour mark as two lines and a quarter as one.
var TerminalHeights = Heights{Hour: 2, Quarter: 1}

// Of returns the height of a slot.
func (h Heights) Of(s Slot) float64 {
	if s.IsHourMark {
		return h.Hour
	}
	return h.Quarter
}

// Span is the vertical extent of a block on the grid.
type Span struct {
	Top    float64
	Height float64
}

// Bottom returns Top + Height.
func (s Span) Bottom() float64 {
	return s.Top + s.Height
}

// Position maps [start, end] onto the grid.
//
// Slots before start add to Top; slots from start through end inclusive add
// to Height. The block then begins at the vertical midpoint of the start slot
// and ends at the midpoint of the end slot, so half of each boundary slot is
// moved out of Height (and half of the start slot into Top).
func (g Grid) Position(h Heights, start, end schedule.TimeOfDay) (Span, error) {
	if end <= start {
		return Span{}, fmt.Errorf("%w: %s-%s", ErrEmptySpan, start, end)
	}
	startIdx, ok := g.Index(start)
	if !ok {
		return Span{}, fmt.Errorf("%w: start %s", ErrUnaligned, start)
	}
	endIdx, ok := g.Index(end)
	if !ok {
		return Span{}, fmt.Errorf("%w: end %s", ErrUnaligned, end)
	}

	var top, height float64
	for i := 0; i <= endIdx; i++ {
		sh := h.Of(g[i])
		if i < startIdx {
			top += sh
		} else {
			height += sh
		}
	}

	startH := h.Of(g[startIdx])
	endH := h.Of(g[endIdx])
	top += startH / 2
	height = height - startH/2 - endH/2

	return Span{Top: top, Height: height}, nil
}

// SnapPosition snaps start and end to the nearest slots before positioning.
// A span that collapses after snapping returns ErrEmptySpan.
func (g Grid) SnapPosition(h Heights, start, end schedule.TimeOfDay) (Span, error) {
	return g.Position(h, g.Snap(start), g.Snap(end))
}

// TotalHeight returns the height of the whole day.
func (g Grid) TotalHeight(h Heights) float64 {
	var total float64
	for _, s := range g {
		total += h.Of(s)
	}
	return total
}

// SlotTop returns the top edge of slot i.
func (g Grid) SlotTop(h Heights, i int) float64 {
	var top float64
	for j := 0; j < i && j < len(g); j++ {
		top += h.Of(g[j])
	}
	return top
}

// Block is an interval placed on the grid.
type Block struct {
	Interval *schedule.Interval
	Span     Span
	Snapped  bool // true if the interval was moved onto slot boundaries
}

// Rejected is an interval that could not be placed.
type Rejected struct {
	Interval *schedule.Interval
	Err      error
}

// Layout places the intervals of a day on the grid.
// With snap false, intervals off the slot boundaries are rejected;
// with snap true they are moved to the nearest slots first.
func (g Grid) Layout(h Heights, intervals []*schedule.Interval, snap bool) ([]Block, []Rejected) {
	blocks := make([]Block, 0, len(intervals))
	var rejected []Rejected
	for _, iv := range intervals {
		aligned := g.Aligned(iv.Start) && g.Aligned(iv.End)

		var (
			span Span
			err  error
		)
		if snap && !aligned {
			span, err = g.SnapPosition(h, iv.Start, iv.End)
		} else {
			span, err = g.Position(h, iv.Start, iv.End)
		}
		if err != nil {
			rejected = append(rejected, Rejected{Interval: iv, Err: err})
			continue
		}
		blocks = append(blocks, Block{Interval: iv, Span: span, Snapped: !aligned})
	}
	return blocks, rejected
}
