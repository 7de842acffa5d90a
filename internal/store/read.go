package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/campusgen/internal/activity"
)

// ReadRuns returns every run in the database, oldest first.
//
// Returns empty slice (not nil) if the database holds no runs.
func (s *Store) ReadRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, stem, seed, record_count, exported_at, fingerprint
		FROM runs
		ORDER BY exported_at ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			run        Run
			seed       string
			exportedAt string
		)
		if err := rows.Scan(&run.ID, &run.Stem, &seed, &run.Count, &exportedAt, &run.Fingerprint); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("run %s: parse seed: %w", run.ID, err)
		}
		if run.ExportedAt, err = time.Parse(time.RFC3339Nano, exportedAt); err != nil {
			return nil, fmt.Errorf("run %s: parse exported_at: %w", run.ID, err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadActivities returns the records of a run ordered by id.
//
// Returns empty slice (not nil) if the run has no records.
func (s *Store) ReadActivities(ctx context.Context, runID string) ([]activity.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, date, location, organizer, heat, participants
		FROM activities
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	records := []activity.Record{}
	for rows.Next() {
		r, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return records, nil
}

func scanActivity(rows *sql.Rows) (activity.Record, error) {
	var (
		r                        activity.Record
		typ, location, organizer string
	)
	err := rows.Scan(&r.ID, &r.Name, &typ, &r.Date, &location, &organizer, &r.Heat, &r.Participants)
	if err != nil {
		return activity.Record{}, fmt.Errorf("scan activity: %w", err)
	}
	r.Type = activity.Type(typ)
	r.Location = activity.Location(location)
	r.Organizer = activity.Organizer(organizer)
	return r, nil
}
