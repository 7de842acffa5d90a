package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/roach88/campusgen/internal/activity"
	"github.com/roach88/campusgen/internal/store"
)

type sqliteRun struct {
	id    string
	stem  string
	seed  uint64
	count int
	at    time.Time
}

// writeSQLite writes records and their run row into a new database file.
// A run without an ID is stored under the stem.
func writeSQLite(ctx context.Context, path string, run sqliteRun, records []activity.Record) (err error) {
	fp, err := activity.Fingerprint(records)
	if err != nil {
		return err
	}

	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); err == nil {
			err = closeErr
		}
	}()

	id := run.id
	if id == "" {
		id = run.stem
	}

	if err := st.WriteRun(ctx, store.Run{
		ID:          id,
		Stem:        run.stem,
		Seed:        run.seed,
		Count:       run.count,
		ExportedAt:  run.at,
		Fingerprint: fp,
	}); err != nil {
		return err
	}
	return st.WriteActivities(ctx, id, records)
}

// ReadSQLite reads every run's records from a SQLite export, run by run.
// A run whose stored fingerprint no longer matches its records fails with
// ErrFingerprintMismatch; runs from before fingerprints were stored are
// not checked.
func ReadSQLite(ctx context.Context, path string) ([]activity.Record, error) {
	// store.Open would create a missing file.
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	runs, err := st.ReadRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	records := []activity.Record{}
	for _, run := range runs {
		rs, err := st.ReadActivities(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: run %s: %w", path, run.ID, err)
		}
		if run.Fingerprint != "" {
			if fp, err := activity.Fingerprint(rs); err != nil || fp != run.Fingerprint {
				return nil, fmt.Errorf("%s: run %s: %w", path, run.ID, ErrFingerprintMismatch)
			}
		}
		for _, r := range rs {
			rec, err := activity.FromValues(r.Values())
			if err != nil {
				return nil, fmt.Errorf("%s: record %d: %w", path, r.ID, err)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}
