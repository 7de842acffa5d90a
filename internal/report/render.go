package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"

	"github.com/roach88/campusgen/internal/activity"
)

// WriteSummary prints the headline statistics. An empty summary prints the
// counts and a "no data" line instead of the date and heat aggregates.
func WriteSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Activities:         %d\n", s.Total)
	fmt.Fprintf(w, "  Activity types:     %d\n", s.DistinctTypes)
	if s.Empty() {
		fmt.Fprintln(w, "  Total participants: 0")
		fmt.Fprintln(w, "  (no data: date range and heat skipped)")
		return
	}
	fmt.Fprintf(w, "  Date range:         %s to %s\n", s.FirstDate, s.LastDate)
	fmt.Fprintf(w, "  Mean heat:          %s\n", s.MeanHeat.StringFixed(1))
	fmt.Fprintf(w, "  Total participants: %d\n", s.TotalParticipants)
}

// WriteTypeCounts prints the per-type breakdown, most frequent first.
func WriteTypeCounts(w io.Writer, s Summary) {
	fmt.Fprintln(w, "Activities per type:")
	if len(s.TypeCounts) == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}
	for _, tc := range s.TypeCounts {
		fmt.Fprintf(w, "  %s: %d\n", tc.Type, tc.Count)
	}
}

// WriteHeat prints the heat maximum, minimum and median.
func WriteHeat(w io.Writer, s Summary) {
	fmt.Fprintln(w, "Heat distribution:")
	if s.Empty() {
		fmt.Fprintln(w, "  (no data)")
		return
	}
	fmt.Fprintf(w, "  Max:    %d\n", s.MaxHeat)
	fmt.Fprintf(w, "  Min:    %d\n", s.MinHeat)
	fmt.Fprintf(w, "  Median: %s\n", s.MedianHeat.String())
}

// Preview returns the first n records (all of them if there are fewer).
func Preview(records []activity.Record, n int) []activity.Record {
	if n < 0 {
		n = 0
	}
	return records[:min(n, len(records))]
}

// WritePreview prints the first n records as an aligned table.
//
// Columns are padded by display width, so full-width CJK labels count as two
// cells and the table lines up in a terminal.
func WritePreview(w io.Writer, records []activity.Record, n int) {
	rows := [][]string{activity.Columns}
	for _, r := range Preview(records, n) {
		rows = append(rows, r.Values())
	}

	widths := make([]int, len(activity.Columns))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}

	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)))
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// displayWidth counts terminal cells: wide and fullwidth runes take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
