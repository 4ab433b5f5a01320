package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
)

func TestNew(t *testing.T) {
	iv, err := New("2025-01-20", "09:00", "10:30", "  Standup  ", " daily sync ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv.Title != "Standup" {
		t.Errorf("Title = %q, want trimmed %q", iv.Title, "Standup")
	}
	if iv.Description != "daily sync" {
		t.Errorf("Description = %q, want %q", iv.Description, "daily sync")
	}
	if iv.Start != 540 || iv.End != 630 {
		t.Errorf("got %s-%s, want 09:00-10:30", iv.Start, iv.End)
	}
	if dateutil.Key(iv.Date) != "2025-01-20" {
		t.Errorf("Date = %s, want 2025-01-20", dateutil.Key(iv.Date))
	}
	if iv.Persisted() {
		t.Error("new interval must not be persisted")
	}
	if iv.Duration() != 90 {
		t.Errorf("Duration() = %d, want 90", iv.Duration())
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		start   string
		end     string
		title   string
		wantErr error
	}{
		{name: "empty title", date: "2025-01-20", start: "09:00", end: "10:00", title: "  ", wantErr: ErrEmptyTitle},
		{name: "missing start", date: "2025-01-20", start: "", end: "10:00", title: "A", wantErr: ErrMissingTime},
		{name: "missing end", date: "2025-01-20", start: "09:00", end: "", title: "A", wantErr: ErrMissingTime},
		{name: "bad start", date: "2025-01-20", start: "9am", end: "10:00", title: "A", wantErr: ErrInvalidTime},
		{name: "bad end", date: "2025-01-20", start: "09:00", end: "25:00", title: "A", wantErr: ErrInvalidTime},
		{name: "end equals start", date: "2025-01-20", start: "09:00", end: "09:00", title: "A", wantErr: ErrEndBeforeStart},
		{name: "end before start", date: "2025-01-20", start: "10:00", end: "09:00", title: "A", wantErr: ErrEndBeforeStart},
		{name: "bad date", date: "20-01-2025", start: "09:00", end: "10:00", title: "A", wantErr: dateutil.ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.date, tt.start, tt.end, tt.title, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
			if !IsValidation(err) {
				t.Errorf("IsValidation(%v) = false, want true", err)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	if IsValidation(ErrConflict) {
		t.Error("conflicts are not validation errors")
	}
	if IsValidation(&StoreError{Op: "insert", Err: errors.New("disk full")}) {
		t.Error("store errors are not validation errors")
	}
}

func TestStoreErrorUnwrap(t *testing.T) {
	err := &StoreError{Op: "update", Err: ErrNotFound}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected StoreError to unwrap to ErrNotFound")
	}
	var se *StoreError
	if !errors.As(error(err), &se) || se.Op != "update" {
		t.Errorf("errors.As failed, got %+v", se)
	}
	if err.Error() != "store update: interval not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestDraftRoundTrip(t *testing.T) {
	d := Draft{ID: 7, Date: "2025-01-20", Start: "13:15", End: "14:00", Title: "Lunch", Description: "with A"}
	iv, err := FromDraft(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv.ID != 7 {
		t.Errorf("ID = %d, want 7", iv.ID)
	}
	if got := iv.Draft(); got != d {
		t.Errorf("Draft() = %+v, want %+v", got, d)
	}
}

func TestTimestamps(t *testing.T) {
	iv := mustInterval(t, "2025-01-20", "09:00", "10:15", "A")
	if got := iv.StartTimestamp(); got != "2025-01-20T09:00:00Z" {
		t.Errorf("StartTimestamp() = %q", got)
	}
	if got := iv.EndTimestamp(); got != "2025-01-20T10:15:00Z" {
		t.Errorf("EndTimestamp() = %q", got)
	}
	back, err := FromTimestamp(iv.EndTimestamp())
	if err != nil || back != iv.End {
		t.Errorf("FromTimestamp(EndTimestamp()) = %s, %v", back, err)
	}
}

func TestEndedBefore(t *testing.T) {
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		date  string
		start string
		end   string
		want  bool
	}{
		{name: "earlier today", date: "2025-01-20", start: "09:00", end: "10:00", want: true},
		{name: "ends exactly now", date: "2025-01-20", start: "11:00", end: "12:00", want: true},
		{name: "in progress", date: "2025-01-20", start: "11:30", end: "12:30", want: false},
		{name: "later today", date: "2025-01-20", start: "15:00", end: "16:00", want: false},
		{name: "yesterday", date: "2025-01-19", start: "22:00", end: "23:00", want: true},
		{name: "tomorrow", date: "2025-01-21", start: "00:00", end: "00:15", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := mustInterval(t, tt.date, tt.start, tt.end, "A")
			if got := iv.EndedBefore(now); got != tt.want {
				t.Errorf("EndedBefore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func mustInterval(t *testing.T, date, start, end, title string) *Interval {
	t.Helper()
	iv, err := New(date, start, end, title, "")
	if err != nil {
		t.Fatalf("New(%s %s-%s) failed: %v", date, start, end, err)
	}
	return iv
}
