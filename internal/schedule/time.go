package schedule

import (
	"fmt"
	"strings"
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// TimeOfDay is a number of minutes since midnight, in [0, MinutesPerDay).
type TimeOfDay int

// ParseTime converts "HH:MM" to a TimeOfDay.
// Both fields must be exactly two digits, hour in 00-23 and minute in 00-59.
func ParseTime(s string) (TimeOfDay, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hour, ok := parseTwoDigits(fields[0])
	if !ok || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minute, ok := parseTwoDigits(fields[1])
	if !ok || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustParseTime is like ParseTime but panics on malformed input.
// Intended for constants and tests.
func MustParseTime(s string) TimeOfDay {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parseTwoDigits(s string) (int, bool) {
	if len(s) != 2 {
		return 0, false
	}
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// FormatTime converts a TimeOfDay to zero-padded 24-hour "HH:MM".
func FormatTime(t TimeOfDay) string {
	return t.String()
}

// String implements fmt.Stringer.
func (t TimeOfDay) String() string {
	m := int(t)
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Valid reports whether t lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

// Add returns t shifted by the given number of minutes, clamped to the day.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	m := int(t) + minutes
	if m < 0 {
		return 0
	}
	if m >= MinutesPerDay {
		return MinutesPerDay - 1
	}
	return TimeOfDay(m)
}

// FromTimestamp extracts the time of day from a persisted ISO date-time
// such as "2025-01-20T09:30:00Z". Only the HH:MM part is consumed.
func FromTimestamp(ts string) (TimeOfDay, error) {
	if len(ts) < 16 || (ts[10] != 'T' && ts[10] != ' ') {
		return 0, fmt.Errorf("%w: timestamp %q", ErrInvalidTime, ts)
	}
	return ParseTime(ts[11:16])
}
