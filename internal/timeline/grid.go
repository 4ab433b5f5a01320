// Package timeline lays a day out as a fixed grid of quarter-hour slots and
// maps intervals onto vertical spans of that grid.
package timeline

import (
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

const (
	// SlotMinutes is the grid resolution.
	SlotMinutes = 15
	// SlotsPerDay is 24 hours * 4 slots per hour = 96 slots.
	SlotsPerDay = schedule.MinutesPerDay / SlotMinutes
	// LastSlot is the offset of the final slot of the day (23:45).
	LastSlot = schedule.TimeOfDay(schedule.MinutesPerDay - SlotMinutes)
)

// Slot is one quarter-hour tick of the day grid.
type Slot struct {
	Offset     schedule.TimeOfDay
	IsHourMark bool
}

// Label returns the slot time as "HH:MM".
func (s Slot) Label() string {
	return s.Offset.String()
}

// Grid is the ordered sequence of slots covering one day, starting at 00:00.
type Grid []Slot

// BuildGrid returns the 96 slots of a day.
func BuildGrid() Grid {
	g := make(Grid, SlotsPerDay)
	for i := range g {
		offset := schedule.TimeOfDay(i * SlotMinutes)
		g[i] = Slot{
			Offset:     offset,
			IsHourMark: offset%60 == 0,
		}
	}
	return g
}

// Index returns the position of the slot starting at t.
// Returns false if t is not on a slot boundary.
func (g Grid) Index(t schedule.TimeOfDay) (int, bool) {
	for i, s := range g {
		if s.Offset == t {
			return i, true
		}
	}
	return -1, false
}

// Aligned reports whether t falls on a slot boundary of the grid.
func (g Grid) Aligned(t schedule.TimeOfDay) bool {
	_, ok := g.Index(t)
	return ok
}

// Snap returns the slot offset nearest to t: up to 7 minutes past a slot
// rounds down, 8 or more rounds up. Times past the last slot clamp to it.
func (g Grid) Snap(t schedule.TimeOfDay) schedule.TimeOfDay {
	if t <= 0 {
		return 0
	}
	down := t - t%SlotMinutes
	if t-down > SlotMinutes/2 {
		down += SlotMinutes
	}
	if down > LastSlot {
		return LastSlot
	}
	return down
}
