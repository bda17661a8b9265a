// Package snapshot moves appointment data between the store and the layout
// engine: importing raw payloads and loading normalized intervals.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"
	"github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/config"
)

// Snapshot is the normalized form of the stored records.
type Snapshot struct {
	Version    int64
	ImportedAt time.Time // zero before the first import
	Intervals  []appointment.Interval
	Records    int // stored records, dropped ones included
}

// Dropped returns how many stored records did not normalize.
func (s *Snapshot) Dropped() int {
	return s.Records - len(s.Intervals)
}

// ImportResult reports what an import stored.
type ImportResult struct {
	Version int64
	Stored  int
	Skipped int // elements that could not be decoded
}

// NewNormalizer builds a normalizer from the layout and calendar settings.
func NewNormalizer(cfg *config.Config, staff appointment.StaffDirectory, logger *zap.Logger) (*appointment.Normalizer, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &appointment.Normalizer{
		Staff:                  staff,
		DefaultDurationMinutes: cfg.Layout.DefaultDurationMinutes,
		Location:               loc,
		UnknownStaff:           cfg.Layout.UnknownStaffLabel,
		Untitled:               cfg.Layout.UntitledLabel,
		Logger:                 logger,
	}, nil
}

// Load reads the stored records and staff directory and normalizes them.
func Load(ctx context.Context, repo appointment.Repository, cfg *config.Config, logger *zap.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	version, err := repo.SnapshotVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot version: %w", err)
	}

	importedAt, err := repo.ImportedAt(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading import time: %w", err)
	}

	records, err := repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	staff, err := repo.StaffDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading staff directory: %w", err)
	}

	n, err := NewNormalizer(cfg, staff, logger)
	if err != nil {
		return nil, err
	}

	intervals := n.Normalize(records)
	logger.Debug("snapshot loaded",
		zap.Int64("version", version),
		zap.Int("records", len(records)),
		zap.Int("intervals", len(intervals)),
	)

	return &Snapshot{
		Version:    version,
		ImportedAt: importedAt,
		Intervals:  intervals,
		Records:    len(records),
	}, nil
}

// Import decodes a raw JSON payload and replaces the stored snapshot with it.
// Undecodable elements are skipped; a payload that is not an array fails.
func Import(ctx context.Context, repo appointment.Repository, data []byte, logger *zap.Logger) (ImportResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	records, err := appointment.DecodeRecords(data, logger)
	if err != nil {
		return ImportResult{}, fmt.Errorf("decoding records: %w", err)
	}

	if err := repo.ReplaceRecords(ctx, records); err != nil {
		return ImportResult{}, fmt.Errorf("storing records: %w", err)
	}

	version, err := repo.SnapshotVersion(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("reading snapshot version: %w", err)
	}

	res := ImportResult{
		Version: version,
		Stored:  len(records),
		Skipped: countElements(data) - len(records),
	}
	logger.Info("snapshot imported",
		zap.Int64("version", res.Version),
		zap.Int("stored", res.Stored),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// countElements returns the number of elements in a records payload,
// unwrapping a {"data": [...]} envelope.
func countElements(data []byte) int {
	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("data")
	}
	return len(list.Array())
}
