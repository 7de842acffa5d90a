// Package report computes and renders summary statistics over activity
// records.
package report

import (
	"encoding/json"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/roach88/campusgen/internal/activity"
)

// TypeCount is the number of records of one type.
type TypeCount struct {
	Type  activity.Type `json:"type"`
	Count int           `json:"count"`
}

// Summary holds the statistics printed after an export.
//
// For an empty record set only the counts are meaningful; Empty reports
// that case and the date and heat aggregates are left zero.
type Summary struct {
	Total             int
	DistinctTypes     int
	FirstDate         string
	LastDate          string
	MeanHeat          decimal.Decimal // rounded to one decimal place
	TotalParticipants int
	TypeCounts        []TypeCount // descending by count, ties in first-appearance order
	MinHeat           int
	MedianHeat        decimal.Decimal
	MaxHeat           int
}

// Empty reports whether the summary was computed over no records.
func (s Summary) Empty() bool { return s.Total == 0 }

// Summarize computes the summary of records.
func Summarize(records []activity.Record) Summary {
	s := Summary{Total: len(records), TypeCounts: []TypeCount{}}
	if len(records) == 0 {
		return s
	}

	counts := make(map[activity.Type]int)
	var order []activity.Type
	heats := make([]int, 0, len(records))
	var heatSum int64

	s.FirstDate, s.LastDate = records[0].Date, records[0].Date
	for _, r := range records {
		if counts[r.Type] == 0 {
			order = append(order, r.Type)
		}
		counts[r.Type]++

		// YYYY-MM-DD compares lexicographically in date order.
		if r.Date < s.FirstDate {
			s.FirstDate = r.Date
		}
		if r.Date > s.LastDate {
			s.LastDate = r.Date
		}

		heats = append(heats, r.Heat)
		heatSum += int64(r.Heat)
		s.TotalParticipants += r.Participants
	}

	s.DistinctTypes = len(order)
	for _, t := range order {
		s.TypeCounts = append(s.TypeCounts, TypeCount{Type: t, Count: counts[t]})
	}
	sort.SliceStable(s.TypeCounts, func(i, j int) bool {
		return s.TypeCounts[i].Count > s.TypeCounts[j].Count
	})

	s.MeanHeat = decimal.NewFromInt(heatSum).DivRound(decimal.NewFromInt(int64(len(records))), 1)

	slices.Sort(heats)
	s.MinHeat = heats[0]
	s.MaxHeat = heats[len(heats)-1]
	s.MedianHeat = median(heats)

	return s
}

// median of a sorted, non-empty slice. An even count averages the two
// middle values.
func median(sorted []int) decimal.Decimal {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return decimal.NewFromInt(int64(sorted[mid]))
	}
	sum := decimal.NewFromInt(int64(sorted[mid-1] + sorted[mid]))
	return sum.Div(decimal.NewFromInt(2))
}

// HeatStats is the heat distribution of a non-empty summary.
type HeatStats struct {
	Min    int         `json:"min"`
	Median json.Number `json:"median"`
	Max    int         `json:"max"`
}

type summaryJSON struct {
	Total             int          `json:"total"`
	DistinctTypes     int          `json:"distinct_types"`
	FirstDate         string       `json:"first_date,omitempty"`
	LastDate          string       `json:"last_date,omitempty"`
	MeanHeat          *json.Number `json:"mean_heat,omitempty"`
	TotalParticipants int          `json:"total_participants"`
	TypeCounts        []TypeCount  `json:"type_counts"`
	Heat              *HeatStats   `json:"heat,omitempty"`
}

// MarshalJSON emits decimals as JSON numbers and omits the aggregates of an
// empty summary.
func (s Summary) MarshalJSON() ([]byte, error) {
	out := summaryJSON{
		Total:             s.Total,
		DistinctTypes:     s.DistinctTypes,
		TotalParticipants: s.TotalParticipants,
		TypeCounts:        s.TypeCounts,
	}
	if out.TypeCounts == nil {
		out.TypeCounts = []TypeCount{}
	}
	if !s.Empty() {
		mean := json.Number(s.MeanHeat.StringFixed(1))
		out.FirstDate = s.FirstDate
		out.LastDate = s.LastDate
		out.MeanHeat = &mean
		out.Heat = &HeatStats{
			Min:    s.MinHeat,
			Median: json.Number(s.MedianHeat.String()),
			Max:    s.MaxHeat,
		}
	}
	return json.Marshal(out)
}
