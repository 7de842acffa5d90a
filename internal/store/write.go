package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/campusgen/internal/activity"
)

// Run describes one export.
type Run struct {
	ID         string
	Stem       string
	Seed       uint64
	Count      int
	ExportedAt time.Time

	// Fingerprint is activity.Fingerprint of the run's records. Runs
	// written before schema version 2 read back with an empty fingerprint.
	Fingerprint string
}

// WriteRun inserts a run record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, stem, seed, record_count, exported_at, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Stem,
		strconv.FormatUint(run.Seed, 10),
		run.Count,
		run.ExportedAt.UTC().Format(time.RFC3339Nano),
		run.Fingerprint,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteActivities inserts records for a run in a single transaction.
// Either every record is written or none is.
//
// Note: The run referenced by runID must exist (foreign key constraint).
func (s *Store) WriteActivities(ctx context.Context, runID string, records []activity.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write activities: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO activities
		(run_id, id, name, type, date, location, organizer, heat, participants)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write activities: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			runID,
			r.ID,
			r.Name,
			string(r.Type),
			r.Date,
			string(r.Location),
			string(r.Organizer),
			r.Heat,
			r.Participants,
		)
		if err != nil {
			return fmt.Errorf("write activities: record %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write activities: commit: %w", err)
	}
	return nil
}
