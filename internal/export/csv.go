package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/roach88/campusgen/internal/activity"
)

// writeCSV writes records as UTF-8 CSV with a leading byte order mark so
// spreadsheet applications detect the encoding of the non-ASCII labels.
func writeCSV(path string, records []activity.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	bom := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())
	w := csv.NewWriter(bom)

	if err := w.Write(activity.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(r.Values()); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return bom.Close()
}

// ReadCSV reads a CSV export. A leading byte order mark is optional.
func ReadCSV(path string) ([]activity.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	r.FieldsPerRecord = len(activity.Columns)

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: missing header: %w", path, ErrHeaderMismatch)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !slices.Equal(header, activity.Columns) {
		return nil, fmt.Errorf("%s: got %v: %w", path, header, ErrHeaderMismatch)
	}

	records := []activity.Record{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rec, err := activity.FromValues(row)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
