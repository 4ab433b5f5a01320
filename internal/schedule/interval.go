// Package schedule defines the core domain types for daytimeline:
// times of day, intervals and the conflict-free schedule of a single day.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
)

// Parse errors.
var (
	ErrInvalidTime = errors.New("time must be in HH:MM format")
)

// Validation errors.
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrMissingTime    = errors.New("start and end time are required")
	ErrEndBeforeStart = errors.New("end time must be after start time")
)

// Domain errors.
var (
	ErrConflict  = errors.New("interval overlaps with another event")
	ErrNotFound  = errors.New("interval not found")
	ErrDuplicate = errors.New("interval is already in the day")
)

// IsValidation reports whether err blocks a submission because of bad input
// rather than a conflict or a store failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrMissingTime) ||
		errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrInvalidTime) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat)
}

// StoreError reports a failed round-trip to the backing store.
type StoreError struct {
	Op  string // "list", "get", "insert", "update", "delete", "dates"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Interval is a user-defined busy span on one calendar day.
type Interval struct {
	ID          int64 // 0 until persisted
	Date        time.Time
	Start       TimeOfDay
	End         TimeOfDay
	Title       string
	Description string
}

// Draft holds raw form input for an interval.
type Draft struct {
	ID          int64 // set when editing an existing interval
	Date        string
	Start       string
	End         string
	Title       string
	Description string
}

// Fields are the mutable parts of a persisted interval.
type Fields struct {
	Start       TimeOfDay
	End         TimeOfDay
	Title       string
	Description string
}

// New creates an Interval with validation.
// date can be empty (defaults to today) or in YYYY-MM-DD format.
// start and end must be in HH:MM format, with end after start.
func New(date, start, end, title, description string) (*Interval, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if start == "" || end == "" {
		return nil, ErrMissingTime
	}

	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	s, err := ParseTime(start)
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	e, err := ParseTime(end)
	if err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if e <= s {
		return nil, ErrEndBeforeStart
	}

	return &Interval{
		Date:        day,
		Start:       s,
		End:         e,
		Title:       title,
		Description: strings.TrimSpace(description),
	}, nil
}

// FromDraft validates form input and carries over the draft ID.
func FromDraft(d Draft) (*Interval, error) {
	iv, err := New(d.Date, d.Start, d.End, d.Title, d.Description)
	if err != nil {
		return nil, err
	}
	iv.ID = d.ID
	return iv, nil
}

// Draft returns the form representation of the interval.
func (iv *Interval) Draft() Draft {
	return Draft{
		ID:          iv.ID,
		Date:        iv.Date.Format(dateutil.DateLayout),
		Start:       iv.Start.String(),
		End:         iv.End.String(),
		Title:       iv.Title,
		Description: iv.Description,
	}
}

// Persisted reports whether the interval has been written to the store.
func (iv *Interval) Persisted() bool {
	return iv.ID != 0
}

// Duration returns the interval length in minutes.
func (iv *Interval) Duration() int {
	return int(iv.End - iv.Start)
}

// Fields returns the mutable parts of the interval.
func (iv *Interval) Fields() Fields {
	return Fields{
		Start:       iv.Start,
		End:         iv.End,
		Title:       iv.Title,
		Description: iv.Description,
	}
}

// Contains reports whether t falls inside [Start, End).
func (iv *Interval) Contains(t TimeOfDay) bool {
	return t >= iv.Start && t < iv.End
}

// EndedBefore reports whether the interval is over at now.
// Intervals on past dates are always over; future dates never are.
func (iv *Interval) EndedBefore(now time.Time) bool {
	today := dateutil.TruncateToDay(now)
	day := time.Date(iv.Date.Year(), iv.Date.Month(), iv.Date.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.Before(today):
		return true
	case day.After(today):
		return false
	}
	nowMinutes := TimeOfDay(now.Hour()*60 + now.Minute())
	return iv.End <= nowMinutes
}

// StartTimestamp returns the persisted ISO form of the start, e.g. "2025-01-20T09:00:00Z".
func (iv *Interval) StartTimestamp() string {
	return timestamp(iv.Date, iv.Start)
}

// EndTimestamp returns the persisted ISO form of the end.
func (iv *Interval) EndTimestamp() string {
	return timestamp(iv.Date, iv.End)
}

func timestamp(date time.Time, t TimeOfDay) string {
	return date.Format(dateutil.DateLayout) + "T" + t.String() + ":00Z"
}

func (iv *Interval) String() string {
	return fmt.Sprintf("%q (%s-%s)", iv.Title, iv.Start, iv.End)
}
