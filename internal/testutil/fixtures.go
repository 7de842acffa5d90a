package testutil

import (
	"strconv"

	"github.com/roach88/campusgen/internal/activity"
)

// Records builds one hand-constructed record per heat value.
//
// Types cycle through activity.Types() in declaration order, dates advance by
// one day from 2026-10-01, and participants are 100*(i+1). The result is
// stable so report tests can compare against golden output.
func Records(heats ...int) []activity.Record {
	types := activity.Types()
	locations := activity.Locations()
	organizers := activity.Organizers()

	records := make([]activity.Record, len(heats))
	for i, heat := range heats {
		typ := types[i%len(types)]
		records[i] = activity.Record{
			ID:           i + 1,
			Name:         string(typ) + strconv.Itoa(i+1),
			Type:         typ,
			Date:         "2026-10-" + pad2(i+1),
			Location:     locations[i%len(locations)],
			Organizer:    organizers[i%len(organizers)],
			Heat:         heat,
			Participants: 100 * (i + 1),
		}
	}
	return records
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
