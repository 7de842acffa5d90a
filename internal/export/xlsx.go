package export

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/campusgen/internal/activity"
)

// SheetName is the single sheet of an XLSX export.
const SheetName = "Sheet1"

// writeXLSX writes records to a single-sheet workbook. id, heat and
// participants are stored as numeric cells.
func writeXLSX(path string, records []activity.Record) (err error) {
	wb := excelize.NewFile()
	defer func() {
		if closeErr := wb.Close(); err == nil {
			err = closeErr
		}
	}()

	sw, err := wb.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(activity.Columns))
	for i, c := range activity.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.ID,
			r.Name,
			string(r.Type),
			r.Date,
			string(r.Location),
			string(r.Organizer),
			r.Heat,
			r.Participants,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return wb.SaveAs(path)
}

// ReadXLSX reads the first sheet of an XLSX export.
func ReadXLSX(path string) ([]activity.Record, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 || !slices.Equal(rows[0], activity.Columns) {
		return nil, fmt.Errorf("%s: %w", path, ErrHeaderMismatch)
	}

	records := make([]activity.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := activity.FromValues(row)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
