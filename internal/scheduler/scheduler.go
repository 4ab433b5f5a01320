// Package scheduler finds room for new intervals within working hours.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/timeline"
)

// searchDays bounds how far ahead Find looks.
const searchDays = 14

// ErrNoRoom is returned when no working day in the search range has a free
// span long enough.
var ErrNoRoom = errors.New("no free slot in working hours")

// Scheduler provides time-aware scheduling operations.
type Scheduler struct {
	workdays map[time.Weekday]bool // empty means every day
	dayStart schedule.TimeOfDay
	dayEnd   schedule.TimeOfDay
}

// New creates a Scheduler for the given working days and hours ("HH:MM").
func New(workdays []string, dayStart, dayEnd string) (*Scheduler, error) {
	start, err := schedule.ParseTime(dayStart)
	if err != nil {
		return nil, fmt.Errorf("day start: %w", err)
	}
	end, err := schedule.ParseTime(dayEnd)
	if err != nil {
		return nil, fmt.Errorf("day end: %w", err)
	}
	if end <= start {
		return nil, schedule.ErrEndBeforeStart
	}

	wd := make(map[time.Weekday]bool)
	for _, name := range workdays {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		wd[day] = true
	}
	return &Scheduler{workdays: wd, dayStart: start, dayEnd: end}, nil
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

// AvailableSlot is a window of one day open for scheduling.
type AvailableSlot struct {
	Date  time.Time
	Start schedule.TimeOfDay
	End   schedule.TimeOfDay
}

// Minutes returns the length of the window.
func (a AvailableSlot) Minutes() int {
	if a.End <= a.Start {
		return 0
	}
	return int(a.End - a.Start)
}

// IsWorkday reports whether t falls on a configured workday.
func (s *Scheduler) IsWorkday(t time.Time) bool {
	return len(s.workdays) == 0 || s.workdays[t.Weekday()]
}

// NextAvailableStart returns the working window that is open at or after now.
// Before working hours it is the whole window of today; during them it
// starts at now rounded up to the next slot; after them, or on a day off, it
// is the next workday.
func (s *Scheduler) NextAvailableStart(now time.Time) AvailableSlot {
	if s.IsWorkday(now) {
		current := roundUp(now)
		if current < s.dayStart {
			current = s.dayStart
		}
		if current < s.dayEnd {
			return AvailableSlot{Date: dateutil.TruncateToDay(now), Start: current, End: s.dayEnd}
		}
	}
	return s.nextWorkday(now)
}

func (s *Scheduler) nextWorkday(from time.Time) AvailableSlot {
	next := dateutil.TruncateToDay(from).AddDate(0, 0, 1)
	for range 7 {
		if s.IsWorkday(next) {
			break
		}
		next = next.AddDate(0, 0, 1)
	}
	return AvailableSlot{Date: next, Start: s.dayStart, End: s.dayEnd}
}

// FreeIn returns the earliest slot-aligned start inside window where an
// interval of minutes fits between the intervals of day.
func (s *Scheduler) FreeIn(day *schedule.DaySchedule, window AvailableSlot, minutes int) (schedule.TimeOfDay, bool) {
	candidate := alignUp(window.Start)
	for _, iv := range day.Intervals() {
		if iv.End <= candidate {
			continue
		}
		if int(iv.Start) >= int(candidate)+minutes {
			break
		}
		candidate = alignUp(iv.End)
	}
	if int(candidate)+minutes > int(window.End) {
		return 0, false
	}
	return candidate, true
}

// Find returns the first free span of minutes in working hours at or after
// now. minutes must be a positive multiple of the slot length.
func (s *Scheduler) Find(ctx context.Context, load schedule.DayLoader, now time.Time, minutes int) (AvailableSlot, error) {
	if minutes <= 0 || minutes%timeline.SlotMinutes != 0 {
		return AvailableSlot{}, fmt.Errorf("%w: duration %dm", timeline.ErrUnaligned, minutes)
	}

	window := s.NextAvailableStart(now)
	for range searchDays {
		if window.Minutes() >= minutes {
			day, err := load(ctx, window.Date)
			if err != nil {
				return AvailableSlot{}, err
			}
			if start, ok := s.FreeIn(day, window, minutes); ok {
				return AvailableSlot{Date: window.Date, Start: start, End: start.Add(minutes)}, nil
			}
		}
		window = s.nextWorkday(window.Date)
	}
	return AvailableSlot{}, ErrNoRoom
}

// roundUp returns now as a time of day, rounded up to the next slot. Past
// the last slot it returns the end of the day.
func roundUp(now time.Time) schedule.TimeOfDay {
	minutes := now.Hour()*60 + now.Minute()
	if now.Second() > 0 || now.Nanosecond() > 0 {
		minutes++
	}
	return alignUp(schedule.TimeOfDay(minutes))
}

func alignUp(t schedule.TimeOfDay) schedule.TimeOfDay {
	if r := int(t) % timeline.SlotMinutes; r != 0 {
		t += schedule.TimeOfDay(timeline.SlotMinutes - r)
	}
	return t
}
