// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
)

// ErrMissingPayload is returned when a record to store has no raw payload.
var ErrMissingPayload = errors.New("record has no raw payload")

// SQLite implements appointment.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// ReplaceRecords swaps the stored snapshot for records and bumps the
// snapshot version, all in one transaction.
func (s *SQLite) ReplaceRecords(ctx context.Context, records []appointment.Record) error {
	for i, r := range records {
		if len(r.Raw) == 0 {
			return fmt.Errorf("record %d: %w", i, ErrMissingPayload)
		}
		if r.Kind != appointment.KindSlot && r.Kind != appointment.KindEpoch {
			return fmt.Errorf("record %d: %w", i, appointment.ErrUnknownRecordShape)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (id, kind, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.ID(), r.Kind.String(), string(r.Raw)); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID(), err)
		}
	}

	query := `
		INSERT INTO snapshot (id, version, imported_at) VALUES (1, 1, ?)
		ON CONFLICT(id) DO UPDATE SET version = version + 1, imported_at = excluded.imported_at
	`
	if _, err := tx.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("bumping snapshot version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListRecords returns the stored snapshot in insertion order.
func (s *SQLite) ListRecords(ctx context.Context) ([]appointment.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, payload FROM records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []appointment.Record
	for rows.Next() {
		var (
			seq     int64
			payload string
		)
		if err := rows.Scan(&seq, &payload); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r, err := appointment.DecodeRecord([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("decoding stored record %d: %w", seq, err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

// SnapshotVersion returns the current snapshot version, 0 before the first
// import.
func (s *SQLite) SnapshotVersion(ctx context.Context) (int64, error) {
	var version int64
	err := s.db.QueryRowContext(ctx, `SELECT version FROM snapshot WHERE id = 1`).Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("querying snapshot version: %w", err)
	}
	return version, nil
}

// ImportedAt returns when the current records were stored. The zero time
// means no records have been imported.
func (s *SQLite) ImportedAt(ctx context.Context) (time.Time, error) {
	var importedAt string
	err := s.db.QueryRowContext(ctx, `SELECT imported_at FROM snapshot WHERE id = 1`).Scan(&importedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("querying snapshot time: %w", err)
	}
	return parseTimestamp(importedAt)
}

// SaveStaff upserts staff id to name entries and bumps the snapshot
// version. Blank ids or names are rejected.
func (s *SQLite) SaveStaff(ctx context.Context, staff appointment.StaffDirectory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO staff (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`
	for id, name := range staff {
		id, name = strings.TrimSpace(id), strings.TrimSpace(name)
		if id == "" || name == "" {
			return fmt.Errorf("staff entry %q: id and name are required", id)
		}
		if _, err := tx.ExecContext(ctx, query, id, name); err != nil {
			return fmt.Errorf("saving staff %s: %w", id, err)
		}
	}

	// Staff names feed normalization, so a new directory is a new snapshot.
	bump := `
		INSERT INTO snapshot (id, version, imported_at) VALUES (1, 1, '')
		ON CONFLICT(id) DO UPDATE SET version = version + 1
	`
	if _, err := tx.ExecContext(ctx, bump); err != nil {
		return fmt.Errorf("bumping snapshot version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// StaffDirectory returns every known staff entry.
func (s *SQLite) StaffDirectory(ctx context.Context) (appointment.StaffDirectory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM staff`)
	if err != nil {
		return nil, fmt.Errorf("querying staff: %w", err)
	}
	defer func() { _ = rows.Close() }()

	dir := make(appointment.StaffDirectory)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning staff: %w", err)
		}
		dir[id] = name
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating staff: %w", err)
	}

	return dir, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// parseTimestamp parses a stored timestamp. SQLite may hand back DATETIME
// columns in a few shapes depending on how they were written.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}

var _ appointment.Repository = (*SQLite)(nil)
