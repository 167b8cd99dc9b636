package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/ridewrap/internal/model"
)

// TripCompleted reports whether a trip status counts as a finished ride.
// "fare_split" is a legacy spelling of a completed split-fare ride.
func TripCompleted(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "fare_split":
		return true
	}
	return false
}

// NormalizeRideType folds the two common UberX spellings onto fixed labels.
// Every other product name passes through untouched.
func NormalizeRideType(raw string) string {
	switch {
	case strings.EqualFold(raw, "uberxl"):
		return "UberXL"
	case strings.EqualFold(raw, "uberx"):
		return "UberX"
	}
	return raw
}

// tripYear derives the bucket year for a trip, preferring the UTC timestamp.
// This is deliberately the opposite preference of TripAccumulator.Add, which
// reads local time first for hour and weekday.
func tripYear(t model.TripRecord, loc *time.Location) (int, bool) {
	ts, ok := firstTimestamp(loc, t.RequestTimeUTC, t.RequestTimeLocal)
	if !ok {
		return 0, false
	}
	return ts.Year(), true
}

// TripAccumulator folds completed trips for one year or for lifetime.
type TripAccumulator struct {
	loc *time.Location

	trips      int
	spent      decimal.Decimal
	miles      float64
	movingSecs float64
	cities     *counter
	rideTypes  *counter
	timeOfDay  model.TimeOfDayCounts
	dayOfWeek  [7]int
	dates      dateSet
	surgeCount int
	surgeSum   float64
	surgeTrips int
	splitFares int
	multiDest  int
	pickups    [][2]float64
	dropoffs   [][2]float64
}

// NewTripAccumulator returns an empty accumulator reading timestamps in loc.
func NewTripAccumulator(loc *time.Location) *TripAccumulator {
	if loc == nil {
		loc = time.Local
	}
	return &TripAccumulator{
		loc:       loc,
		cities:    newCounter(),
		rideTypes: newCounter(),
		dates:     make(dateSet),
		pickups:   [][2]float64{},
		dropoffs:  [][2]float64{},
	}
}

// Add folds one trip. Callers filter on TripCompleted first; any field that
// fails to parse only skips its own sub-update.
func (a *TripAccumulator) Add(t model.TripRecord) {
	a.trips++

	for _, fare := range []string{t.FareAmount, t.ClientUpfrontFareLocal, t.OriginalFareLocal} {
		if v, ok := parseAmountOK(fare); ok {
			a.spent = a.spent.Add(decimal.NewFromFloat(v))
			break
		}
	}

	a.miles += ParseAmount(t.DistanceMiles)
	a.movingSecs += ParseAmount(t.DurationSeconds)

	if t.City != "" {
		a.cities.add(t.City, 1)
	}

	if ts, ok := firstTimestamp(a.loc, t.RequestTimeLocal, t.RequestTimeUTC); ok {
		addTimeOfDay(&a.timeOfDay, ts.Hour())
		a.dayOfWeek[ts.Weekday()]++
		a.dates.add(ts)
	}

	if rt := NormalizeRideType(t.ProductType); rt != "" {
		a.rideTypes.add(rt, 1)
	}

	if IsTruthy(t.IsSurged) {
		a.surgeCount++
	}
	if m := ParseAmount(t.SurgeMultiplier); m > 1 {
		a.surgeSum += m
		a.surgeTrips++
	}
	if IsTruthy(t.IsFareSplit) {
		a.splitFares++
	}
	if IsTruthy(t.IsMultiDestination) {
		a.multiDest++
	}

	if lat, lng := ParseAmount(t.PickupLat), ParseAmount(t.PickupLng); lat != 0 && lng != 0 {
		a.pickups = append(a.pickups, [2]float64{lat, lng})
	}
	if lat, lng := ParseAmount(t.DropoffLat), ParseAmount(t.DropoffLng); lat != 0 && lng != 0 {
		a.dropoffs = append(a.dropoffs, [2]float64{lat, lng})
	}
}

// Summary formats the accumulator with top-n ranked lists.
func (a *TripAccumulator) Summary(n int) model.TripSummary {
	s := model.EmptyTripSummary()
	s.TotalTrips = a.trips
	s.TotalSpent = a.spent.StringFixed(2)
	s.TotalMiles = fmt.Sprintf("%.2f", a.miles)
	s.TotalDurationHours = fmt.Sprintf("%.1f", a.movingSecs/3600)
	s.TimeOfDayCounts = a.timeOfDay
	s.DayOfWeekCounts = a.dayOfWeek
	s.MaxStreak = a.dates.streak()
	s.SurgeCount = a.surgeCount
	s.SplitFareCount = a.splitFares
	s.MultiDestCount = a.multiDest

	if a.surgeTrips > 0 {
		s.AvgSurgeMultiplier = fmt.Sprintf("%.2f", a.surgeSum/float64(a.surgeTrips))
	}

	for _, r := range a.cities.top(n) {
		s.TopCities = append(s.TopCities, model.CityCount{City: r.Key, Count: r.Count})
	}
	for _, r := range a.rideTypes.top(n) {
		s.RideTypes = append(s.RideTypes, model.RideTypeCount{Type: r.Key, Count: r.Count})
	}

	s.HeatmapData.Pickup = append(s.HeatmapData.Pickup, a.pickups...)
	s.HeatmapData.Dropoff = append(s.HeatmapData.Dropoff, a.dropoffs...)
	return s
}

func addTimeOfDay(c *model.TimeOfDayCounts, hour int) {
	switch timeOfDay(hour) {
	case "morning":
		c.Morning++
	case "afternoon":
		c.Afternoon++
	case "evening":
		c.Evening++
	default:
		c.Night++
	}
}
