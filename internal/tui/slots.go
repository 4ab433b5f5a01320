package tui

import (
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/timeline"
)

// SlotState is what occupies one grid slot.
type SlotState int

const (
	SlotFree SlotState = iota
	SlotBusy
	SlotPast // busy with an interval that already ended
)

// SlotRow is one quarter-hour of the day view.
type SlotRow struct {
	Slot     timeline.Slot
	Interval *schedule.Interval // nil when free
	State    SlotState
	First    bool // first slot of its interval
	Alt      bool // alternate shade, set on every other interval
	Now      bool // the current time falls in this slot
}

// Lines returns how many terminal lines the row takes.
func (r SlotRow) Lines() int {
	return int(timeline.TerminalHeights.Of(r.Slot))
}

// SlotRows is the day laid out on the 96-slot grid.
type SlotRows struct {
	Rows     []SlotRow
	Rejected []timeline.Rejected // intervals that could not be placed
	Snapped  int                 // intervals moved onto slot boundaries
}

// BuildSlotRows places the intervals of day on grid. With showPast, slots of
// intervals that ended before now are marked past. The now marker is only set
// when day is today.
func BuildSlotRows(grid timeline.Grid, day *schedule.DaySchedule, now time.Time, snap, showPast bool) SlotRows {
	rows := make([]SlotRow, len(grid))
	for i, s := range grid {
		rows[i] = SlotRow{Slot: s}
	}

	out := SlotRows{Rows: rows}
	if day != nil {
		h := timeline.TerminalHeights
		blocks, rejected := grid.Layout(h, day.Intervals(), snap)
		out.Rejected = rejected

		// A row belongs to a block when its midline falls inside the span:
		// spans run from the midline of the start slot to that of the end slot.
		mids := make([]float64, len(grid))
		for i, s := range grid {
			mids[i] = grid.SlotTop(h, i) + h.Of(s)/2
		}

		for n, b := range blocks {
			if b.Snapped {
				out.Snapped++
			}

			state := SlotBusy
			if showPast && b.Interval.EndedBefore(now) {
				state = SlotPast
			}

			first := true
			for i := range rows {
				if mids[i] < b.Span.Top || mids[i] >= b.Span.Bottom() {
					continue
				}
				rows[i].Interval = b.Interval
				rows[i].State = state
				rows[i].First = first
				rows[i].Alt = n%2 == 1
				first = false
			}
		}
	}

	if day != nil && dateutil.SameDay(day.Date, now) {
		minute := schedule.TimeOfDay(now.Hour()*60 + now.Minute())
		if i := int(minute) / timeline.SlotMinutes; i < len(rows) {
			rows[i].Now = true
		}
	}
	return out
}

// LineOf returns the first terminal line of slot i.
func (r SlotRows) LineOf(i int) int {
	line := 0
	for j := 0; j < i && j < len(r.Rows); j++ {
		line += r.Rows[j].Lines()
	}
	return line
}

// TotalLines returns the height of the whole day in terminal lines.
func (r SlotRows) TotalLines() int {
	return r.LineOf(len(r.Rows))
}

// NowIndex returns the slot holding the current time, or -1.
func (r SlotRows) NowIndex() int {
	for i, row := range r.Rows {
		if row.Now {
			return i
		}
	}
	return -1
}

// NextBlock returns the first slot of the next interval after slot i, or -1.
func (r SlotRows) NextBlock(i int) int {
	for j := i + 1; j < len(r.Rows); j++ {
		if r.Rows[j].First {
			return j
		}
	}
	return -1
}

// PrevBlock returns the first slot of the interval before the one at slot i,
// or -1.
func (r SlotRows) PrevBlock(i int) int {
	current := r.blockStart(i)
	for j := current - 1; j >= 0; j-- {
		if r.Rows[j].First {
			return j
		}
	}
	return -1
}

// blockStart returns the first slot of the interval covering i, or i when free.
func (r SlotRows) blockStart(i int) int {
	if i < 0 || i >= len(r.Rows) || r.Rows[i].Interval == nil {
		return i
	}
	id := r.Rows[i].Interval
	for i > 0 && r.Rows[i-1].Interval == id {
		i--
	}
	return i
}
