// Package export writes activity records to CSV, XLSX, JSON and SQLite files
// and reads them back.
//
// One Export call writes every requested format under a shared stem
// (campus_activities_<YYYYMMDD_HHMMSS>). All files of one call describe the
// identical dataset; only the container differs.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/campusgen/internal/activity"
)

// StemPrefix starts every export file name.
const StemPrefix = "campus_activities_"

// StemTimeLayout is the timestamp layout embedded in the stem.
const StemTimeLayout = "20060102_150405"

// File is one written export file.
type File struct {
	Format Format `json:"format"`
	Path   string `json:"path"`
	Size   int64  `json:"size"`
}

// Result describes a completed export.
type Result struct {
	RunID      string    `json:"run_id,omitempty"`
	Stem       string    `json:"stem"`
	Dir        string    `json:"dir"`
	ExportedAt time.Time `json:"exported_at"`
	Files      []File    `json:"files"`
}

// Exporter writes record sets to a directory.
type Exporter struct {
	dir     string
	formats []Format
	clock   func() time.Time
	out     io.Writer
	logger  *slog.Logger
	runID   string
	seed    uint64
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFormats selects the formats to write. Order is normalised to write
// order; see ParseFormats.
func WithFormats(fs ...Format) Option {
	return func(e *Exporter) { e.formats = fs }
}

// WithClock overrides the export timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(e *Exporter) { e.clock = clock }
}

// WithOutput sets where confirmation lines are printed. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(e *Exporter) { e.out = w }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// WithRun records the run ID and seed in the SQLite export and the Result.
func WithRun(runID string, seed uint64) Option {
	return func(e *Exporter) {
		e.runID = runID
		e.seed = seed
	}
}

// New creates an Exporter that writes DefaultFormats into dir.
func New(dir string, opts ...Option) *Exporter {
	e := &Exporter{
		dir:     dir,
		formats: DefaultFormats,
		clock:   time.Now,
		out:     io.Discard,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the output directory.
func (e *Exporter) Dir() string { return e.dir }

// Export writes records in every configured format.
//
// The output directory (and its parents) is created before any write. The
// first failure stops the export and is returned as a *WriteError; files
// written before it remain on disk. Zero records produce empty-but-valid
// files in every format.
func (e *Exporter) Export(ctx context.Context, records []activity.Record) (*Result, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, &WriteError{Op: "create directory", Path: e.dir, Err: err}
	}

	now := e.clock()
	stem, err := e.nextStem(now)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:      e.runID,
		Stem:       stem,
		Dir:        e.dir,
		ExportedAt: now,
		Files:      make([]File, 0, len(e.formats)),
	}

	for _, f := range ordered(e.formats) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		path := filepath.Join(e.dir, stem+f.Ext())
		if err := e.write(ctx, f, path, stem, now, records); err != nil {
			return result, &WriteError{Op: "write " + string(f), Path: path, Err: err}
		}

		info, err := os.Stat(path)
		if err != nil {
			return result, &WriteError{Op: "stat " + string(f), Path: path, Err: err}
		}

		result.Files = append(result.Files, File{Format: f, Path: path, Size: info.Size()})
		fmt.Fprintf(e.out, "%s file saved: %s\n", f.Label(), path)
		e.logger.Debug("export file written", "format", f, "path", path, "bytes", info.Size(), "records", len(records))
	}

	e.logger.Info("export complete", "run_id", e.runID, "stem", stem, "files", len(result.Files))
	return result, nil
}

func (e *Exporter) write(ctx context.Context, f Format, path, stem string, now time.Time, records []activity.Record) error {
	switch f {
	case FormatCSV:
		return writeCSV(path, records)
	case FormatXLSX:
		return writeXLSX(path, records)
	case FormatJSON:
		return writeJSON(path, records)
	case FormatSQLite:
		return writeSQLite(ctx, path, sqliteRun{
			id:    e.runID,
			stem:  stem,
			seed:  e.seed,
			count: len(records),
			at:    now,
		}, records)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// nextStem returns the first stem for now that no existing file uses.
// Two exports within the same second get "_2", "_3", ... suffixes.
func (e *Exporter) nextStem(now time.Time) (string, error) {
	base := StemPrefix + now.Format(StemTimeLayout)
	for n := 1; ; n++ {
		stem := base
		if n > 1 {
			stem = fmt.Sprintf("%s_%d", base, n)
		}

		taken := false
		for _, f := range formats {
			path := filepath.Join(e.dir, stem+f.Ext())
			_, err := os.Stat(path)
			if err == nil {
				taken = true
				break
			}
			if !os.IsNotExist(err) {
				return "", &WriteError{Op: "check", Path: path, Err: err}
			}
		}
		if !taken {
			return stem, nil
		}
	}
}

// ordered returns fs deduplicated and in write order.
func ordered(fs []Format) []Format {
	want := make(map[Format]bool, len(fs))
	for _, f := range fs {
		want[f] = true
	}
	out := make([]Format, 0, len(want))
	for _, f := range formats {
		if want[f] {
			out = append(out, f)
			delete(want, f)
		}
	}
	// Unknown formats are kept so write reports them.
	for _, f := range fs {
		if want[f] {
			out = append(out, f)
			delete(want, f)
		}
	}
	return out
}
