package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/campusgen/internal/activity"
)

// ReadFile reads any export file, choosing the reader by extension
// (.csv, .xlsx, .json, .db). Every record is validated.
func ReadFile(ctx context.Context, path string) ([]activity.Record, error) {
	f, ok := formatForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	var (
		records []activity.Record
		err     error
	)
	switch f {
	case FormatCSV:
		records, err = ReadCSV(path)
	case FormatXLSX:
		records, err = ReadXLSX(path)
	case FormatJSON:
		records, err = ReadJSON(path)
	case FormatSQLite:
		records, err = ReadSQLite(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		if err := r.Validate(); err != nil {
			var fe *activity.FieldError
			if errors.As(err, &fe) {
				fe.ID = r.ID
			}
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return records, nil
}
