package schedule

import (
	"fmt"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
)

// Overlaps reports whether two intervals share any time.
// Intervals are half-open, so touching endpoints do not overlap:
// a.Start < b.End AND b.Start < a.End
func Overlaps(a, b *Interval) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// FindConflict returns the first interval in existing that overlaps candidate,
// skipping the interval whose ID is excludeID. An excludeID of 0 skips nothing.
// Returns nil if there is no conflict.
func FindConflict(candidate *Interval, existing []*Interval, excludeID int64) *Interval {
	for _, e := range existing {
		if excludeID != 0 && e.ID == excludeID {
			continue
		}
		if Overlaps(candidate, e) {
			return e
		}
	}
	return nil
}

// HasConflict reports whether candidate overlaps any interval in existing
// other than the one being edited.
func HasConflict(candidate *Interval, existing []*Interval, excludeID int64) bool {
	return FindConflict(candidate, existing, excludeID) != nil
}

// ConflictError wraps ErrConflict with both sides of the overlap.
func ConflictError(candidate, existing *Interval) error {
	return fmt.Errorf("%w: %s conflicts with #%d %s",
		ErrConflict, candidate, existing.ID, existing)
}

// CheckBatch reports the first overlapping pair inside a batch of new intervals
// on the same date.
func CheckBatch(batch []*Interval) error {
	for i := 0; i < len(batch); i++ {
		for j := i + 1; j < len(batch); j++ {
			a, b := batch[i], batch[j]
			if !dateutil.SameDay(a.Date, b.Date) {
				continue
			}
			if Overlaps(a, b) {
				return ConflictError(a, b)
			}
		}
	}
	return nil
}
