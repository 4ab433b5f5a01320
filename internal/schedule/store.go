package schedule

import (
	"context"
	"time"
)

// Store defines the persistence interface for intervals.
type Store interface {
	// ListIntervalsForDay returns the intervals of a date, ascending by start.
	ListIntervalsForDay(ctx context.Context, date time.Time) ([]*Interval, error)

	// InsertInterval persists a new interval and sets its ID.
	// Returns a wrapped ErrConflict if it overlaps a stored interval.
	InsertInterval(ctx context.Context, iv *Interval) error

	// InsertIntervals persists a batch atomically. Any conflict rejects the whole batch.
	InsertIntervals(ctx context.Context, ivs []*Interval) error

	// UpdateInterval replaces the mutable fields of a stored interval.
	// Returns ErrNotFound if id does not exist, or a wrapped ErrConflict.
	UpdateInterval(ctx context.Context, id int64, f Fields) error

	// DeleteInterval removes a stored interval.
	// Returns ErrNotFound if id does not exist.
	DeleteInterval(ctx context.Context, id int64) error

	// GetInterval retrieves an interval by ID, or returns ErrNotFound.
	GetInterval(ctx context.Context, id int64) (*Interval, error)

	// ListEventDates returns the distinct dates within [from, to] that have intervals.
	ListEventDates(ctx context.Context, from, to time.Time) ([]time.Time, error)

	// Close releases any resources held by the store.
	Close() error
}

// DayLoader returns the intervals stored on date without side effects on
// the caller's selection.
type DayLoader func(ctx context.Context, date time.Time) (*DaySchedule, error)
