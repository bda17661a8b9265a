package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS records (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL,
			kind        TEXT NOT NULL CHECK(kind IN ('slot', 'epoch')),
			payload     TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS snapshot (
			id          INTEGER PRIMARY KEY CHECK(id = 1),
			version     INTEGER NOT NULL,
			imported_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS staff (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_records_id ON records(id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
