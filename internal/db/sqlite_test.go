package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func newInterval(t *testing.T, date, start, end, title string) *schedule.Interval {
	t.Helper()
	iv, err := schedule.New(date, start, end, title, "")
	if err != nil {
		t.Fatalf("schedule.New(%s %s-%s): %v", date, start, end, err)
	}
	return iv
}

func TestInsertInterval(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	iv := newInterval(t, "2025-01-15", "09:00", "10:00", "Standup")
	iv.Description = "daily sync"

	if err := repo.InsertInterval(ctx, iv); err != nil {
		t.Fatalf("InsertInterval failed: %v", err)
	}
	if iv.ID == 0 {
		t.Fatal("expected ID to be set after insert")
	}

	got, err := repo.GetInterval(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetInterval failed: %v", err)
	}
	if got.Title != "Standup" || got.Description != "daily sync" {
		t.Errorf("got %q/%q, want Standup/daily sync", got.Title, got.Description)
	}
	if got.Start.String() != "09:00" || got.End.String() != "10:00" {
		t.Errorf("got %s-%s, want 09:00-10:00", got.Start, got.End)
	}
	if dateutil.Key(got.Date) != "2025-01-15" {
		t.Errorf("got date %s, want 2025-01-15", dateutil.Key(got.Date))
	}
}

func TestGetInterval_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetInterval(context.Background(), 999)
	if !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertInterval_Overlap(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		date       string
		wantErr    bool
	}{
		{name: "same span", start: "09:00", end: "10:00", date: "2025-01-15", wantErr: true},
		{name: "contained", start: "09:15", end: "09:45", date: "2025-01-15", wantErr: true},
		{name: "covers", start: "08:00", end: "11:00", date: "2025-01-15", wantErr: true},
		{name: "tail overlap", start: "09:45", end: "10:15", date: "2025-01-15", wantErr: true},
		{name: "adjacent after", start: "10:00", end: "10:15", date: "2025-01-15", wantErr: false},
		{name: "adjacent before", start: "08:00", end: "09:00", date: "2025-01-15", wantErr: false},
		{name: "other day", start: "09:00", end: "10:00", date: "2025-01-16", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			ctx := context.Background()

			existing := newInterval(t, "2025-01-15", "09:00", "10:00", "A")
			if err := repo.InsertInterval(ctx, existing); err != nil {
				t.Fatalf("InsertInterval(A) failed: %v", err)
			}

			err := repo.InsertInterval(ctx, newInterval(t, tt.date, tt.start, tt.end, "B"))
			if tt.wantErr && !errors.Is(err, schedule.ErrConflict) {
				t.Errorf("expected ErrConflict, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestListIntervalsForDay(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, iv := range []*schedule.Interval{
		newInterval(t, "2025-01-15", "14:00", "15:00", "Late"),
		newInterval(t, "2025-01-15", "09:00", "09:30", "Early"),
		newInterval(t, "2025-01-16", "09:00", "09:30", "Tomorrow"),
	} {
		if err := repo.InsertInterval(ctx, iv); err != nil {
			t.Fatalf("InsertInterval(%s) failed: %v", iv.Title, err)
		}
	}

	ivs, err := repo.ListIntervalsForDay(ctx, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListIntervalsForDay failed: %v", err)
	}
	if len(ivs) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(ivs))
	}
	if ivs[0].Title != "Early" || ivs[1].Title != "Late" {
		t.Errorf("expected Early, Late; got %s, %s", ivs[0].Title, ivs[1].Title)
	}

	empty, err := repo.ListIntervalsForDay(ctx, time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListIntervalsForDay failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no intervals, got %d", len(empty))
	}
}

func TestInsertIntervals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	batch := []*schedule.Interval{
		newInterval(t, "2025-01-15", "09:00", "10:00", "Mon"),
		newInterval(t, "2025-01-22", "09:00", "10:00", "Mon"),
		newInterval(t, "2025-01-29", "09:00", "10:00", "Mon"),
	}
	if err := repo.InsertIntervals(ctx, batch); err != nil {
		t.Fatalf("InsertIntervals failed: %v", err)
	}
	for i, iv := range batch {
		if iv.ID == 0 {
			t.Errorf("batch[%d] has no ID", i)
		}
	}

	if err := repo.InsertIntervals(ctx, nil); err != nil {
		t.Errorf("empty batch: unexpected error %v", err)
	}
}

func TestInsertIntervals_Atomic(t *testing.T) {
	tests := []struct {
		name  string
		batch func(t *testing.T) []*schedule.Interval
	}{
		{
			name: "overlap within batch",
			batch: func(t *testing.T) []*schedule.Interval {
				return []*schedule.Interval{
					newInterval(t, "2025-01-20", "13:00", "14:00", "X"),
					newInterval(t, "2025-01-20", "13:30", "14:30", "Y"),
				}
			},
		},
		{
			name: "overlap with stored",
			batch: func(t *testing.T) []*schedule.Interval {
				return []*schedule.Interval{
					newInterval(t, "2025-01-20", "13:00", "14:00", "X"),
					newInterval(t, "2025-01-15", "09:30", "10:30", "Y"),
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			ctx := context.Background()

			if err := repo.InsertInterval(ctx, newInterval(t, "2025-01-15", "09:00", "10:00", "A")); err != nil {
				t.Fatalf("InsertInterval(A) failed: %v", err)
			}

			batch := tt.batch(t)
			err := repo.InsertIntervals(ctx, batch)
			if !errors.Is(err, schedule.ErrConflict) {
				t.Fatalf("expected ErrConflict, got %v", err)
			}
			for i, iv := range batch {
				if iv.ID != 0 {
					t.Errorf("batch[%d] kept ID %d after rollback", i, iv.ID)
				}
			}

			ivs, err := repo.ListIntervalsForDay(ctx, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))
			if err != nil {
				t.Fatalf("ListIntervalsForDay failed: %v", err)
			}
			if len(ivs) != 0 {
				t.Errorf("expected nothing written, got %d intervals", len(ivs))
			}
		})
	}
}

func TestUpdateInterval(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	iv := newInterval(t, "2025-01-15", "09:00", "10:00", "Standup")
	if err := repo.InsertInterval(ctx, iv); err != nil {
		t.Fatalf("InsertInterval failed: %v", err)
	}

	// Shrinking within its own span must not conflict with itself.
	f := schedule.Fields{
		Start:       schedule.MustParseTime("09:15"),
		End:         schedule.MustParseTime("09:45"),
		Title:       "Short standup",
		Description: "moved",
	}
	if err := repo.UpdateInterval(ctx, iv.ID, f); err != nil {
		t.Fatalf("UpdateInterval failed: %v", err)
	}

	got, err := repo.GetInterval(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetInterval failed: %v", err)
	}
	if got.Fields() != f {
		t.Errorf("got %+v, want %+v", got.Fields(), f)
	}
	if dateutil.Key(got.Date) != "2025-01-15" {
		t.Errorf("date changed to %s", dateutil.Key(got.Date))
	}
}

func TestUpdateInterval_Overlap(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := newInterval(t, "2025-01-15", "09:00", "10:00", "A")
	b := newInterval(t, "2025-01-15", "10:00", "10:15", "B")
	if err := repo.InsertIntervals(ctx, []*schedule.Interval{a, b}); err != nil {
		t.Fatalf("InsertIntervals failed: %v", err)
	}

	f := b.Fields()
	f.Start = schedule.MustParseTime("09:45")
	err := repo.UpdateInterval(ctx, b.ID, f)
	if !errors.Is(err, schedule.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, err := repo.GetInterval(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetInterval failed: %v", err)
	}
	if got.Start.String() != "10:00" {
		t.Errorf("B start = %s after rejected update, want 10:00", got.Start)
	}
}

func TestUpdateInterval_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpdateInterval(context.Background(), 42, schedule.Fields{
		Start: schedule.MustParseTime("09:00"),
		End:   schedule.MustParseTime("10:00"),
		Title: "ghost",
	})
	if !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteInterval(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	iv := newInterval(t, "2025-01-15", "09:00", "10:00", "A")
	if err := repo.InsertInterval(ctx, iv); err != nil {
		t.Fatalf("InsertInterval failed: %v", err)
	}

	if err := repo.DeleteInterval(ctx, iv.ID); err != nil {
		t.Fatalf("DeleteInterval failed: %v", err)
	}
	if _, err := repo.GetInterval(ctx, iv.ID); !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteInterval(ctx, iv.ID); !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}

	// The freed span can be booked again.
	if err := repo.InsertInterval(ctx, newInterval(t, "2025-01-15", "09:00", "10:00", "A again")); err != nil {
		t.Errorf("reinsert after delete failed: %v", err)
	}
}

func TestListEventDates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, iv := range []*schedule.Interval{
		newInterval(t, "2025-01-31", "09:00", "10:00", "Jan"),
		newInterval(t, "2025-02-03", "09:00", "10:00", "Feb A"),
		newInterval(t, "2025-02-03", "11:00", "12:00", "Feb B"),
		newInterval(t, "2025-02-28", "09:00", "10:00", "Feb C"),
		newInterval(t, "2025-03-01", "09:00", "10:00", "Mar"),
	} {
		if err := repo.InsertInterval(ctx, iv); err != nil {
			t.Fatalf("InsertInterval(%s) failed: %v", iv.Title, err)
		}
	}

	first, last, err := dateutil.ParseMonth("2025-02")
	if err != nil {
		t.Fatalf("ParseMonth failed: %v", err)
	}

	dates, err := repo.ListEventDates(ctx, first, last)
	if err != nil {
		t.Fatalf("ListEventDates failed: %v", err)
	}

	want := []string{"2025-02-03", "2025-02-28"}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d", len(dates), len(want))
	}
	for i, d := range dates {
		if dateutil.Key(d) != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dateutil.Key(d), want[i])
		}
		if d.Location() != time.Local {
			t.Errorf("dates[%d] location = %v, want Local", i, d.Location())
		}
	}
}

func TestParseDate_AllFormats(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2025-01-15", want: "2025-01-15"},
		{input: "2025-01-15T00:00:00Z", want: "2025-01-15"},
		{input: "15/01/2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dateutil.Key(got) != tt.want || got.Location() != time.Local {
				t.Errorf("parseDate(%q) = %v, want %s local", tt.input, got, tt.want)
			}
		})
	}
}

func TestStoreErrorOp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.InsertInterval(ctx, newInterval(t, "2025-01-15", "09:00", "10:00", "A")); err != nil {
		t.Fatalf("InsertInterval(A) failed: %v", err)
	}

	tests := []struct {
		name   string
		run    func() error
		wantOp string
	}{
		{
			name:   "insert conflict",
			run:    func() error { return repo.InsertInterval(ctx, newInterval(t, "2025-01-15", "09:30", "10:30", "B")) },
			wantOp: "insert",
		},
		{
			name:   "delete missing",
			run:    func() error { return repo.DeleteInterval(ctx, 999) },
			wantOp: "delete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var se *schedule.StoreError
			if err := tt.run(); !errors.As(err, &se) {
				t.Fatalf("expected *schedule.StoreError, got %T: %v", err, err)
			}
			if se.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", se.Op, tt.wantOp)
			}
		})
	}
}
