package schedule

import (
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
)

// DaySchedule holds the conflict-free intervals of a single day.
type DaySchedule struct {
	Date      time.Time
	intervals []*Interval // sorted by Start
}

// NewDaySchedule creates an empty schedule for the given date.
func NewDaySchedule(date time.Time) *DaySchedule {
	return &DaySchedule{
		Date:      dateutil.TruncateToDay(date),
		intervals: make([]*Interval, 0),
	}
}

// NewDayScheduleWith creates a schedule from persisted intervals.
// Returns a wrapped ErrConflict if any two of them overlap.
func NewDayScheduleWith(date time.Time, intervals []*Interval) (*DaySchedule, error) {
	d := NewDaySchedule(date)
	for _, iv := range intervals {
		if err := d.Add(iv); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Intervals returns a copy of the interval slice.
func (d *DaySchedule) Intervals() []*Interval {
	result := make([]*Interval, len(d.intervals))
	copy(result, d.intervals)
	return result
}

// Len returns the number of intervals in the day.
func (d *DaySchedule) Len() int {
	return len(d.intervals)
}

// Add inserts an interval, keeping the schedule sorted by start time.
// Returns a wrapped ErrConflict if it overlaps an existing interval, or a
// wrapped ErrDuplicate if a persisted interval with the same ID is already
// in the day (use Replace for that).
func (d *DaySchedule) Add(iv *Interval) error {
	if iv == nil {
		return nil
	}
	if iv.Persisted() && d.indexOf(iv.ID) >= 0 {
		return fmt.Errorf("%w: #%d", ErrDuplicate, iv.ID)
	}
	if other := FindConflict(iv, d.intervals, iv.ID); other != nil {
		return ConflictError(iv, other)
	}
	d.intervals = append(d.intervals, iv)
	d.sort()
	return nil
}

// Replace swaps the interval with the same ID for iv.
// Returns ErrNotFound if no such interval exists, or a wrapped ErrConflict.
func (d *DaySchedule) Replace(iv *Interval) error {
	idx := d.indexOf(iv.ID)
	if idx < 0 {
		return ErrNotFound
	}
	if other := FindConflict(iv, d.intervals, iv.ID); other != nil {
		return ConflictError(iv, other)
	}
	d.intervals[idx] = iv
	d.sort()
	return nil
}

// Remove deletes an interval by ID and returns it, or nil if not found.
func (d *DaySchedule) Remove(id int64) *Interval {
	idx := d.indexOf(id)
	if idx < 0 {
		return nil
	}
	iv := d.intervals[idx]
	d.intervals = append(d.intervals[:idx], d.intervals[idx+1:]...)
	return iv
}

// Get returns the interval with the given ID, or nil.
func (d *DaySchedule) Get(id int64) *Interval {
	if idx := d.indexOf(id); idx >= 0 {
		return d.intervals[idx]
	}
	return nil
}

// Conflict returns the interval that candidate would overlap, ignoring the
// interval being edited.
func (d *DaySchedule) Conflict(candidate *Interval) *Interval {
	return FindConflict(candidate, d.intervals, candidate.ID)
}

// At returns the interval covering t, or nil.
func (d *DaySchedule) At(t TimeOfDay) *Interval {
	for _, iv := range d.intervals {
		if iv.Contains(t) {
			return iv
		}
	}
	return nil
}

// BusyAt reports whether t falls inside any interval.
func (d *DaySchedule) BusyAt(t TimeOfDay) bool {
	return d.At(t) != nil
}

// PastBusyAt reports whether t falls inside an interval that has already ended at now.
func (d *DaySchedule) PastBusyAt(t TimeOfDay, now time.Time) bool {
	iv := d.At(t)
	return iv != nil && iv.EndedBefore(now)
}

// Span is a free stretch of the day.
type Span struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Minutes returns the span length.
func (s Span) Minutes() int {
	return int(s.End - s.Start)
}

// FreeSpans returns the gaps between intervals that last at least minMinutes.
func (d *DaySchedule) FreeSpans(minMinutes int) []Span {
	var spans []Span
	cursor := TimeOfDay(0)
	for _, iv := range d.intervals {
		if iv.Start > cursor && int(iv.Start-cursor) >= minMinutes {
			spans = append(spans, Span{Start: cursor, End: iv.Start})
		}
		if iv.End > cursor {
			cursor = iv.End
		}
	}
	if cursor < MinutesPerDay && MinutesPerDay-int(cursor) >= minMinutes {
		spans = append(spans, Span{Start: cursor, End: MinutesPerDay})
	}
	return spans
}

// BusyMinutes returns the total scheduled time.
func (d *DaySchedule) BusyMinutes() int {
	total := 0
	for _, iv := range d.intervals {
		total += iv.Duration()
	}
	return total
}

func (d *DaySchedule) indexOf(id int64) int {
	if id == 0 {
		return -1
	}
	for i, iv := range d.intervals {
		if iv.ID == id {
			return i
		}
	}
	return -1
}

func (d *DaySchedule) sort() {
	slices.SortStableFunc(d.intervals, func(a, b *Interval) int {
		return int(a.Start) - int(b.Start)
	})
}
