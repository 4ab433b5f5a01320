// Package planner keeps the schedule of the selected day in sync with the store.
// Both CLI and TUI go through it so validation, the conflict fast path and the
// event-dates cache behave the same everywhere.
package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
	"github.com/javiermolinar/daytimeline/internal/timeline"
)

// DayPlanner owns the snapshot of one day and the per-month event-dates cache.
// It is safe for concurrent use.
type DayPlanner struct {
	store schedule.Store
	log   *zap.Logger
	now   func() time.Time
	grid  timeline.Grid
	snap  bool

	mu    sync.Mutex
	day   *schedule.DaySchedule
	dates map[string][]time.Time // keyed by YYYY-MM
	gens  map[string]uint64      // bumped on every write to the month
}

// Option configures a DayPlanner.
type Option func(*DayPlanner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(p *DayPlanner) {
		if log != nil {
			p.log = log
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *DayPlanner) {
		if now != nil {
			p.now = now
		}
	}
}

// WithSnap moves times that are off the 15-minute grid to the nearest slot
// on write. Without it such times are rejected with timeline.ErrUnaligned.
func WithSnap(snap bool) Option {
	return func(p *DayPlanner) {
		p.snap = snap
	}
}

// New creates a DayPlanner over store. The selected day starts as today, empty
// until Load is called.
func New(store schedule.Store, opts ...Option) *DayPlanner {
	p := &DayPlanner{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
		grid:  timeline.BuildGrid(),
		dates: make(map[string][]time.Time),
		gens:  make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.day = schedule.NewDaySchedule(p.now())
	return p
}

// Now returns the planner clock.
func (p *DayPlanner) Now() time.Time {
	return p.now()
}

// Day returns the current snapshot. Callers must not mutate it.
func (p *DayPlanner) Day() *schedule.DaySchedule {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.day
}

// Load reads date from the store and makes it the selected day.
func (p *DayPlanner) Load(ctx context.Context, date time.Time) (*schedule.DaySchedule, error) {
	day, err := p.read(ctx, date)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.day = day
	p.mu.Unlock()

	p.log.Debug("day loaded",
		zap.String("date", dateutil.Key(date)),
		zap.Int("intervals", day.Len()))
	return day, nil
}

// Reload re-reads the selected day.
func (p *DayPlanner) Reload(ctx context.Context) (*schedule.DaySchedule, error) {
	return p.Load(ctx, p.Day().Date)
}

func (p *DayPlanner) read(ctx context.Context, date time.Time) (*schedule.DaySchedule, error) {
	ivs, err := p.store.ListIntervalsForDay(ctx, date)
	if err != nil {
		return nil, err
	}
	return schedule.NewDayScheduleWith(date, ivs)
}

// Save validates a draft and writes it. A draft without ID is inserted;
// a draft with ID updates that interval, which keeps its stored date.
//
// The candidate is checked against the snapshot of its day first, so most
// conflicts are reported without a write. The store checks again inside the
// write transaction. On success the selected day is refreshed.
func (p *DayPlanner) Save(ctx context.Context, d schedule.Draft) (*schedule.Interval, error) {
	iv, err := schedule.FromDraft(d)
	if err != nil {
		return nil, err
	}
	if err := p.fit(iv); err != nil {
		return nil, err
	}

	if iv.Persisted() {
		current, err := p.store.GetInterval(ctx, iv.ID)
		if err != nil {
			return nil, err
		}
		iv.Date = current.Date
	}

	day, err := p.snapshotFor(ctx, iv.Date)
	if err != nil {
		return nil, err
	}
	if other := schedule.FindConflict(iv, day.Intervals(), iv.ID); other != nil {
		p.log.Debug("conflict on client check",
			zap.Stringer("candidate", iv),
			zap.Int64("conflicts_with", other.ID))
		return nil, schedule.ConflictError(iv, other)
	}

	if iv.Persisted() {
		err = p.store.UpdateInterval(ctx, iv.ID, iv.Fields())
	} else {
		err = p.store.InsertInterval(ctx, iv)
	}
	if err != nil {
		p.log.Warn("save failed", zap.Stringer("interval", iv), zap.Error(err))
		return nil, err
	}

	p.log.Info("interval saved",
		zap.Int64("id", iv.ID),
		zap.String("date", dateutil.Key(iv.Date)),
		zap.Stringer("interval", iv))
	p.invalidate(iv.Date)
	p.refresh(ctx, iv.Date)
	return iv, nil
}

// SaveAll inserts new intervals atomically, possibly spanning several days.
// Any conflict, inside the batch or with stored intervals, rejects all of them.
// With snapping on, off-grid intervals are moved in place.
func (p *DayPlanner) SaveAll(ctx context.Context, ivs []*schedule.Interval) error {
	if len(ivs) == 0 {
		return nil
	}
	for _, iv := range ivs {
		if err := p.fit(iv); err != nil {
			return err
		}
	}
	if err := schedule.CheckBatch(ivs); err != nil {
		return err
	}
	if err := p.store.InsertIntervals(ctx, ivs); err != nil {
		p.log.Warn("batch save failed", zap.Int("count", len(ivs)), zap.Error(err))
		return err
	}

	p.log.Info("intervals saved", zap.Int("count", len(ivs)))
	selected := p.Day().Date
	touched := false
	for _, iv := range ivs {
		p.invalidate(iv.Date)
		if dateutil.SameDay(iv.Date, selected) {
			touched = true
		}
	}
	if touched {
		p.refresh(ctx, selected)
	}
	return nil
}

// Delete removes an interval and refreshes the selected day.
func (p *DayPlanner) Delete(ctx context.Context, id int64) error {
	iv, err := p.store.GetInterval(ctx, id)
	if err != nil {
		return err
	}
	if err := p.store.DeleteInterval(ctx, id); err != nil {
		p.log.Warn("delete failed", zap.Int64("id", id), zap.Error(err))
		return err
	}

	p.log.Info("interval deleted", zap.Int64("id", id), zap.Stringer("interval", iv))
	p.invalidate(iv.Date)
	p.refresh(ctx, iv.Date)
	return nil
}

// Get returns a stored interval by ID.
func (p *DayPlanner) Get(ctx context.Context, id int64) (*schedule.Interval, error) {
	return p.store.GetInterval(ctx, id)
}

// Recent returns the intervals of the days before the selected day, oldest
// first. Days without events are skipped using the month cache.
func (p *DayPlanner) Recent(ctx context.Context, days int) ([]*schedule.Interval, error) {
	selected := p.Day().Date
	var out []*schedule.Interval
	for i := days; i >= 1; i-- {
		date := selected.AddDate(0, 0, -i)
		has, err := p.HasEvents(ctx, date)
		if err != nil {
			return nil, err
		}
		if !has {
			continue
		}
		ivs, err := p.store.ListIntervalsForDay(ctx, date)
		if err != nil {
			return nil, err
		}
		out = append(out, ivs...)
	}
	return out, nil
}

// EventDates returns the days of month that have at least one interval.
// Results are cached per month until a write touches that month.
func (p *DayPlanner) EventDates(ctx context.Context, month time.Time) ([]time.Time, error) {
	key := month.Format(dateutil.MonthLayout)

	p.mu.Lock()
	cached, ok := p.dates[key]
	gen := p.gens[key]
	p.mu.Unlock()
	if ok {
		return cached, nil
	}

	first, last := dateutil.MonthRange(month)
	dates, err := p.store.ListEventDates(ctx, first, last)
	if err != nil {
		return nil, err
	}

	// A write to the month during the read may not be in dates.
	p.mu.Lock()
	fresh := p.gens[key] == gen
	if fresh {
		p.dates[key] = dates
	}
	p.mu.Unlock()

	if fresh {
		p.log.Debug("event dates cached", zap.String("month", key), zap.Int("days", len(dates)))
	}
	return dates, nil
}

// HasEvents reports whether date has any interval, using the month cache.
func (p *DayPlanner) HasEvents(ctx context.Context, date time.Time) (bool, error) {
	dates, err := p.EventDates(ctx, date)
	if err != nil {
		return false, err
	}
	for _, d := range dates {
		if dateutil.SameDay(d, date) {
			return true, nil
		}
	}
	return false, nil
}

// Peek returns the intervals of date without selecting it.
func (p *DayPlanner) Peek(ctx context.Context, date time.Time) (*schedule.DaySchedule, error) {
	return p.snapshotFor(ctx, date)
}

// snapshotFor returns the snapshot when date is the selected day, otherwise a
// fresh read of date.
func (p *DayPlanner) snapshotFor(ctx context.Context, date time.Time) (*schedule.DaySchedule, error) {
	day := p.Day()
	if dateutil.SameDay(day.Date, date) {
		return day, nil
	}
	return p.read(ctx, date)
}

// refresh reloads the selected day if date is on it. The write it follows
// already succeeded, so a failed reload is only logged; the next Load or
// Reload repairs the snapshot.
func (p *DayPlanner) refresh(ctx context.Context, date time.Time) {
	selected := p.Day().Date
	if !dateutil.SameDay(selected, date) {
		return
	}
	if _, err := p.Load(ctx, selected); err != nil {
		p.log.Warn("refreshing day after write",
			zap.String("date", dateutil.Key(selected)),
			zap.Error(err))
	}
}

func (p *DayPlanner) invalidate(date time.Time) {
	key := date.Format(dateutil.MonthLayout)
	p.mu.Lock()
	delete(p.dates, key)
	p.gens[key]++
	p.mu.Unlock()
}

// fit applies the grid policy to iv: off-grid times are rejected, or moved
// to the nearest slots with snapping on.
func (p *DayPlanner) fit(iv *schedule.Interval) error {
	if p.grid.Aligned(iv.Start) && p.grid.Aligned(iv.End) {
		return nil
	}
	if !p.snap {
		return fmt.Errorf("%w: %s", timeline.ErrUnaligned, iv)
	}
	start, end := p.grid.Snap(iv.Start), p.grid.Snap(iv.End)
	if end <= start {
		return fmt.Errorf("%w: %s snaps to %s-%s", timeline.ErrEmptySpan, iv, start, end)
	}
	p.log.Debug("snapped to grid",
		zap.Stringer("interval", iv),
		zap.Stringer("start", start),
		zap.Stringer("end", end))
	iv.Start, iv.End = start, end
	return nil
}
