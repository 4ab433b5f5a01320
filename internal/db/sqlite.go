// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/daytimeline/internal/dateutil"
	"github.com/javiermolinar/daytimeline/internal/schedule"
)

// SQLite implements schedule.Store using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ schedule.Store = (*SQLite)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLite store and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// A single connection serialises writers so the overlap check and the
	// write that follows it cannot interleave with another transaction.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const selectIntervals = `
	SELECT id, day, start_at, end_at, title, description
	FROM intervals
`

// ListIntervalsForDay returns the intervals of a date, ascending by start.
func (s *SQLite) ListIntervalsForDay(ctx context.Context, date time.Time) ([]*schedule.Interval, error) {
	ivs, err := s.listIntervalsForDay(ctx, date)
	return ivs, storeErr("list", err)
}

func (s *SQLite) listIntervalsForDay(ctx context.Context, date time.Time) ([]*schedule.Interval, error) {
	query := selectIntervals + `
		WHERE day = ?
		ORDER BY start_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, dateutil.Key(date))
	if err != nil {
		return nil, fmt.Errorf("querying intervals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ivs []*schedule.Interval
	for rows.Next() {
		iv, err := scanInterval(rows)
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating intervals: %w", err)
	}

	return ivs, nil
}

// GetInterval retrieves an interval by ID.
func (s *SQLite) GetInterval(ctx context.Context, id int64) (*schedule.Interval, error) {
	iv, err := getInterval(ctx, s.db, id)
	return iv, storeErr("get", err)
}

func getInterval(ctx context.Context, q querier, id int64) (*schedule.Interval, error) {
	iv, err := scanInterval(q.QueryRowContext(ctx, selectIntervals+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: #%d", schedule.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return iv, nil
}

// InsertInterval adds a new interval and sets its ID.
// The overlap check runs in the same transaction as the insert.
func (s *SQLite) InsertInterval(ctx context.Context, iv *schedule.Interval) error {
	return storeErr("insert", s.insertInterval(ctx, iv))
}

func (s *SQLite) insertInterval(ctx context.Context, iv *schedule.Interval) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := checkOverlap(ctx, tx, iv, 0); err != nil {
		return err
	}
	if err := insert(ctx, tx, iv); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// InsertIntervals adds multiple intervals atomically.
// If any interval overlaps another in the batch or a stored one, nothing is written.
func (s *SQLite) InsertIntervals(ctx context.Context, ivs []*schedule.Interval) error {
	return storeErr("insert", s.insertIntervals(ctx, ivs))
}

func (s *SQLite) insertIntervals(ctx context.Context, ivs []*schedule.Interval) error {
	if len(ivs) == 0 {
		return nil
	}

	if err := schedule.CheckBatch(ivs); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, iv := range ivs {
		if err := checkOverlap(ctx, tx, iv, 0); err != nil {
			return err
		}
	}

	for _, iv := range ivs {
		if err := insert(ctx, tx, iv); err != nil {
			resetIDs(ivs)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		resetIDs(ivs)
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// resetIDs clears IDs assigned inside a transaction that was rolled back.
func resetIDs(ivs []*schedule.Interval) {
	for _, iv := range ivs {
		iv.ID = 0
	}
}

// UpdateInterval replaces the mutable fields of a stored interval.
// The interval keeps its date; moving across days is a delete and an insert.
func (s *SQLite) UpdateInterval(ctx context.Context, id int64, f schedule.Fields) error {
	return storeErr("update", s.updateInterval(ctx, id, f))
}

func (s *SQLite) updateInterval(ctx context.Context, id int64, f schedule.Fields) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getInterval(ctx, tx, id)
	if err != nil {
		return err
	}

	updated := &schedule.Interval{
		ID:          id,
		Date:        current.Date,
		Start:       f.Start,
		End:         f.End,
		Title:       f.Title,
		Description: f.Description,
	}
	if err := checkOverlap(ctx, tx, updated, id); err != nil {
		return err
	}

	query := `
		UPDATE intervals
		SET start_at = ?, end_at = ?, title = ?, description = ?
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, query,
		updated.StartTimestamp(),
		updated.EndTimestamp(),
		updated.Title,
		updated.Description,
		id,
	); err != nil {
		return fmt.Errorf("updating interval: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteInterval removes a stored interval.
func (s *SQLite) DeleteInterval(ctx context.Context, id int64) error {
	return storeErr("delete", s.deleteInterval(ctx, id))
}

func (s *SQLite) deleteInterval(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM intervals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting interval: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: #%d", schedule.ErrNotFound, id)
	}

	return nil
}

// ListEventDates returns the distinct days within [from, to] that have intervals.
func (s *SQLite) ListEventDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	dates, err := s.listEventDates(ctx, from, to)
	return dates, storeErr("dates", err)
}

func (s *SQLite) listEventDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT DISTINCT day
		FROM intervals
		WHERE day >= ? AND day <= ?
		ORDER BY day
	`

	rows, err := s.db.QueryContext(ctx, query, dateutil.Key(from), dateutil.Key(to))
	if err != nil {
		return nil, fmt.Errorf("querying event dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scanning event date: %w", err)
		}
		d, err := parseDate(day)
		if err != nil {
			return nil, fmt.Errorf("parsing event date: %w", err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event dates: %w", err)
	}

	return dates, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// storeErr tags a failed operation with its name. nil stays nil.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &schedule.StoreError{Op: op, Err: err}
}

func insert(ctx context.Context, tx *sql.Tx, iv *schedule.Interval) error {
	query := `
		INSERT INTO intervals (day, start_at, end_at, title, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		dateutil.Key(iv.Date),
		iv.StartTimestamp(),
		iv.EndTimestamp(),
		iv.Title,
		iv.Description,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting interval: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	iv.ID = id

	return nil
}

// checkOverlap reports a stored interval on the same day that overlaps iv.
// Timestamps share a fixed layout, so string order is time order.
// excludeID 0 excludes nothing.
func checkOverlap(ctx context.Context, q querier, iv *schedule.Interval, excludeID int64) error {
	query := selectIntervals + `
		WHERE day = ?
		  AND id != ?
		  AND start_at < ?
		  AND end_at > ?
		ORDER BY start_at
		LIMIT 1
	`

	existing, err := scanInterval(q.QueryRowContext(ctx, query,
		dateutil.Key(iv.Date),
		excludeID,
		iv.EndTimestamp(),
		iv.StartTimestamp(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}

	return schedule.ConflictError(iv, existing)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInterval(row scanner) (*schedule.Interval, error) {
	var (
		iv      schedule.Interval
		day     string
		startAt string
		endAt   string
	)

	if err := row.Scan(&iv.ID, &day, &startAt, &endAt, &iv.Title, &iv.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning interval: %w", err)
	}

	var err error
	iv.Date, err = parseDate(day)
	if err != nil {
		return nil, fmt.Errorf("parsing day: %w", err)
	}
	iv.Start, err = schedule.FromTimestamp(startAt)
	if err != nil {
		return nil, fmt.Errorf("parsing start_at: %w", err)
	}
	iv.End, err = schedule.FromTimestamp(endAt)
	if err != nil {
		return nil, fmt.Errorf("parsing end_at: %w", err)
	}

	return &iv, nil
}

// parseDate parses a stored day as local midnight so it compares equal to
// days derived from time.Now().
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateutil.DateLayout, s, time.Local); err == nil {
		return t, nil
	}

	// SQLite may hand DATE values back as "2006-01-02T00:00:00Z".
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation(dateutil.DateLayout, s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}
