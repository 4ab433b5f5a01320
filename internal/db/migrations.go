package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS intervals (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			day         TEXT NOT NULL,
			start_at    TEXT NOT NULL,
			end_at      TEXT NOT NULL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			CHECK (end_at > start_at)
		);

		CREATE INDEX IF NOT EXISTS idx_intervals_day ON intervals(day, start_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating intervals table: %w", err)
	}

	return nil
}
