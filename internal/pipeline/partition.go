package pipeline

import (
	"sort"
	"strconv"
	"time"

	"github.com/theirongolddev/ridewrap/internal/model"
)

// DefaultTopN is the length of every ranked list unless configured otherwise.
const DefaultTopN = 5

// Options controls how records are interpreted and summarized.
type Options struct {
	// Location is the calendar used for year, hour and weekday. Nil means time.Local.
	Location *time.Location
	// TopN bounds ranked lists. Zero means DefaultTopN.
	TopN int
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	return o
}

// Input is everything the engine needs from an export.
type Input struct {
	Trips   []model.TripRecord
	Orders  []model.OrderLine
	Profile []model.Record
	Ratings []model.Record
}

// buckets routes records to a lazily created per-year accumulator while
// always feeding a lifetime accumulator alongside.
type buckets[A any] struct {
	newAcc   func() A
	lifetime A
	years    map[int]A
}

func newBuckets[A any](newAcc func() A) *buckets[A] {
	return &buckets[A]{
		newAcc:   newAcc,
		lifetime: newAcc(),
		years:    make(map[int]A),
	}
}

// route returns the year accumulator and the lifetime accumulator.
func (b *buckets[A]) route(year int) (A, A) {
	acc, ok := b.years[year]
	if !ok {
		acc = b.newAcc()
		b.years[year] = acc
	}
	return acc, b.lifetime
}

// AggregateTrips folds completed trips into lifetime and per-year summaries.
func AggregateTrips(trips []model.TripRecord, opts Options) (model.TripSummary, map[int]model.TripSummary) {
	opts = opts.withDefaults()
	b := newBuckets(func() *TripAccumulator { return NewTripAccumulator(opts.Location) })

	for _, t := range trips {
		if !TripCompleted(t.Status) {
			continue
		}
		year, ok := tripYear(t, opts.Location)
		if !ok {
			continue
		}
		yearAcc, life := b.route(year)
		yearAcc.Add(t)
		life.Add(t)
	}

	byYear := make(map[int]model.TripSummary, len(b.years))
	for y, acc := range b.years {
		byYear[y] = acc.Summary(opts.TopN)
	}
	return b.lifetime.Summary(opts.TopN), byYear
}

// AggregateOrders folds order lines into lifetime and per-year summaries.
func AggregateOrders(lines []model.OrderLine, opts Options) (model.EatsSummary, map[int]model.EatsSummary) {
	opts = opts.withDefaults()
	b := newBuckets(func() *OrderAccumulator { return NewOrderAccumulator(opts.Location) })

	for _, l := range lines {
		year, ok := orderYear(l, opts.Location)
		if !ok {
			continue
		}
		yearAcc, life := b.route(year)
		yearAcc.Add(l)
		life.Add(l)
	}

	byYear := make(map[int]model.EatsSummary, len(b.years))
	for y, acc := range b.years {
		byYear[y] = acc.Summary(opts.TopN)
	}
	return b.lifetime.Summary(opts.TopN), byYear
}

// Build runs the full aggregation and assembles the report: Lifetime first,
// then every year seen in either dataset, most recent first. A year missing
// from one dataset gets that side's empty summary.
func Build(in Input, opts Options) model.Report {
	opts = opts.withDefaults()

	tripLife, tripYears := AggregateTrips(in.Trips, opts)
	eatsLife, eatsYears := AggregateOrders(in.Orders, opts)

	seen := make(map[int]struct{}, len(tripYears)+len(eatsYears))
	for y := range tripYears {
		seen[y] = struct{}{}
	}
	for y := range eatsYears {
		seen[y] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	report := model.Report{
		Profile: BuildProfile(in.Profile, in.Ratings, opts.Location),
		Years:   make(model.Years, 0, len(years)+1),
	}
	report.Years = append(report.Years, model.YearEntry{
		Label:   model.LifetimeLabel,
		Summary: model.YearSummary{Trips: tripLife, Eats: eatsLife},
	})

	for _, y := range years {
		ys := model.YearSummary{
			Trips: model.EmptyTripSummary(),
			Eats:  model.EmptyEatsSummary(),
		}
		if t, ok := tripYears[y]; ok {
			ys.Trips = t
		}
		if e, ok := eatsYears[y]; ok {
			ys.Eats = e
		}
		report.Years = append(report.Years, model.YearEntry{
			Label:   strconv.Itoa(y),
			Summary: ys,
		})
	}
	return report
}
