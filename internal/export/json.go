package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/roach88/campusgen/internal/activity"
)

// writeJSON writes records as a JSON array of objects keyed by column name.
// Non-ASCII labels are written literally and HTML characters are not escaped.
func writeJSON(path string, records []activity.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	if records == nil {
		records = []activity.Record{}
	}

	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadJSON reads a JSON export. Unknown keys are rejected.
func ReadJSON(path string) ([]activity.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(bufio.NewReader(f))
	dec.DisallowUnknownFields()

	var raw []activity.Record
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	records := make([]activity.Record, 0, len(raw))
	for i, r := range raw {
		// Re-parse through the tabular path so labels are normalised the
		// same way for every format.
		rec, err := activity.FromValues(r.Values())
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
