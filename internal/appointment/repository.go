package appointment

import (
	"context"
	"time"
)

// Repository stores the latest snapshot of raw records fetched from the
// backend together with the staff directory used to resolve names.
type Repository interface {
	// ReplaceRecords swaps the stored snapshot for records.
	ReplaceRecords(ctx context.Context, records []Record) error

	// ListRecords returns the stored snapshot in the order it was saved.
	ListRecords(ctx context.Context) ([]Record, error)

	// SnapshotVersion changes every time ReplaceRecords or SaveStaff
	// succeeds, so it keys everything derived from records and names.
	SnapshotVersion(ctx context.Context) (int64, error)

	// ImportedAt returns when the current records were stored, the zero
	// time before the first import.
	ImportedAt(ctx context.Context) (time.Time, error)

	// SaveStaff upserts staff id to name entries and starts a new snapshot version.
	SaveStaff(ctx context.Context, staff StaffDirectory) error

	// StaffDirectory returns every known staff entry.
	StaffDirectory(ctx context.Context) (StaffDirectory, error)

	// Close releases any resources held by the repository.
	Close() error
}
