package export

import (
	"fmt"
	"strings"
)

// Format is an export container format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// formats lists every format in the order Export writes them.
var formats = []Format{FormatCSV, FormatXLSX, FormatJSON, FormatSQLite}

// DefaultFormats are the formats written when none are requested ("all").
var DefaultFormats = []Format{FormatCSV, FormatXLSX, FormatJSON}

// Ext returns the file extension, including the dot.
func (f Format) Ext() string {
	if f == FormatSQLite {
		return ".db"
	}
	return "." + string(f)
}

// Label is the human-readable name used in confirmation lines.
func (f Format) Label() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatXLSX:
		return "Excel"
	case FormatJSON:
		return "JSON"
	case FormatSQLite:
		return "SQLite"
	}
	return string(f)
}

// ParseFormats resolves format names into a deduplicated list in write order.
//
// Accepted names: csv, xlsx, excel (alias of xlsx), json, sqlite, all
// (= DefaultFormats). Names are case-insensitive; an empty list means "all".
func ParseFormats(names []string) ([]Format, error) {
	want := make(map[Format]bool)
	for _, name := range names {
		switch n := strings.ToLower(strings.TrimSpace(name)); n {
		case "all":
			for _, f := range DefaultFormats {
				want[f] = true
			}
		case "excel", "xlsx":
			want[FormatXLSX] = true
		case "csv", "json", "sqlite":
			want[Format(n)] = true
		default:
			return nil, fmt.Errorf("%w: %q (valid: csv, xlsx, excel, json, sqlite, all)", ErrUnknownFormat, name)
		}
	}
	if len(want) == 0 {
		return append([]Format(nil), DefaultFormats...), nil
	}

	out := make([]Format, 0, len(want))
	for _, f := range formats {
		if want[f] {
			out = append(out, f)
		}
	}
	return out, nil
}

// formatForPath maps a file extension back to its format.
func formatForPath(path string) (Format, bool) {
	lower := strings.ToLower(path)
	for _, f := range formats {
		if strings.HasSuffix(lower, f.Ext()) {
			return f, true
		}
	}
	return "", false
}
