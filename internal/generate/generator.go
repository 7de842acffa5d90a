// Package generate fabricates synthetic campus activity records.
//
// Output is a pure function of the seed, the count and the generation date:
// every Generate call starts from a freshly seeded source, so calling it
// twice in one process returns the same sequence both times.
package generate

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/roach88/campusgen/internal/activity"
)

// DefaultSeed is the seed used when none is configured.
const DefaultSeed uint64 = 42

// DayWindow is the maximum distance, in days, between a record's date and the
// generation date.
const DayWindow = 30

// ErrNegativeCount is returned by Generate for n < 0.
var ErrNegativeCount = errors.New("record count must not be negative")

// Generator produces activity records from a seeded source.
type Generator struct {
	seed  uint64
	clock func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the seed every Generate call starts from.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithClock overrides the source of "today". Used by tests.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) { g.clock = clock }
}

// New creates a Generator with DefaultSeed and the wall clock.
func New(opts ...Option) *Generator {
	g := &Generator{seed: DefaultSeed, clock: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Seed returns the configured seed.
func (g *Generator) Seed() uint64 { return g.seed }

// Generate returns n records. n == 0 yields an empty, non-nil slice.
func (g *Generator) Generate(n int) ([]activity.Record, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	return Draw(NewSource(g.seed), n, g.clock()), nil
}

// NewSource returns the pseudo-random source Generate uses for a seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Draw builds n records from r, dating them relative to today.
//
// Draw order per record is fixed (type, day offset, location, organizer,
// heat, participants); changing it changes every generated dataset.
func Draw(r *rand.Rand, n int, today time.Time) []activity.Record {
	types := activity.Types()
	locations := activity.Locations()
	organizers := activity.Organizers()

	records := make([]activity.Record, 0, max(n, 0))
	for i := 0; i < n; i++ {
		typ := types[r.IntN(len(types))]
		offset := r.IntN(2*DayWindow+1) - DayWindow
		location := locations[r.IntN(len(locations))]
		organizer := organizers[r.IntN(len(organizers))]
		heat := activity.MinHeat + r.IntN(activity.MaxHeat-activity.MinHeat+1)
		participants := activity.MinParticipants + r.IntN(activity.MaxParticipants-activity.MinParticipants+1)

		records = append(records, activity.Record{
			ID:           i + 1,
			Name:         string(typ) + strconv.Itoa(i+1),
			Type:         typ,
			Date:         today.AddDate(0, 0, offset).Format(activity.DateLayout),
			Location:     location,
			Organizer:    organizer,
			Heat:         heat,
			Participants: participants,
		})
	}
	return records
}
