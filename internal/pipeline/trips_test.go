package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/ridewrap/internal/model"
)

// trip returns a completed trip on Monday 2024-03-04 08:15 local.
func trip(mut ...func(*model.TripRecord)) model.TripRecord {
	t := model.TripRecord{
		Status:           "completed",
		RequestTimeLocal: "2024-03-04 08:15:00",
		RequestTimeUTC:   "2024-03-04 08:15:00 +0000 UTC",
		FareAmount:       "10.00",
		DistanceMiles:    "3.5",
		DurationSeconds:  "900",
		City:             "Boston",
		ProductType:      "UberX",
	}
	for _, m := range mut {
		m(&t)
	}
	return t
}

func utcOpts() Options {
	return Options{Location: time.UTC}
}

func TestTripCompleted(t *testing.T) {
	for _, s := range []string{"completed", "fare_split", "COMPLETED", " completed "} {
		if !TripCompleted(s) {
			t.Errorf("TripCompleted(%q) = false", s)
		}
	}
	for _, s := range []string{"canceled", "cancelled", "no_drivers_available", "unfulfilled", ""} {
		if TripCompleted(s) {
			t.Errorf("TripCompleted(%q) = true", s)
		}
	}
}

func TestAggregateTrips_StatusFiltering(t *testing.T) {
	trips := []model.TripRecord{
		trip(),
		trip(func(r *model.TripRecord) { r.Status = "cancelled"; r.City = "Paris"; r.FareAmount = "99" }),
	}
	life, years := AggregateTrips(trips, utcOpts())

	if life.TotalTrips != 1 {
		t.Errorf("TotalTrips = %d, want 1", life.TotalTrips)
	}
	if life.TotalSpent != "10.00" {
		t.Errorf("TotalSpent = %q, want 10.00", life.TotalSpent)
	}
	for _, c := range life.TopCities {
		if c.City == "Paris" {
			t.Error("cancelled trip city counted")
		}
	}
	if years[2024].TotalTrips != 1 {
		t.Errorf("2024 TotalTrips = %d, want 1", years[2024].TotalTrips)
	}
}

func TestTripAccumulator_FarePriority(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*model.TripRecord)
		want string
	}{
		{"fare_amount wins", func(r *model.TripRecord) { r.FareAmount = "10.00"; r.ClientUpfrontFareLocal = "99.00" }, "10.00"},
		{"upfront when no fare", func(r *model.TripRecord) { r.FareAmount = ""; r.ClientUpfrontFareLocal = "15.50" }, "15.50"},
		{"original last", func(r *model.TripRecord) { r.FareAmount = "x"; r.OriginalFareLocal = "7.25" }, "7.25"},
		{"none", func(r *model.TripRecord) { r.FareAmount = "" }, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewTripAccumulator(time.UTC)
			acc.Add(trip(tt.mut))
			if got := acc.Summary(5).TotalSpent; got != tt.want {
				t.Errorf("TotalSpent = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTripAccumulator_RideTypeNormalization(t *testing.T) {
	acc := NewTripAccumulator(time.UTC)
	for _, pt := range []string{"UberX", "uberx", "UBERX", "uberXL", "Comfort", "UberXL"} {
		acc.Add(trip(func(r *model.TripRecord) { r.ProductType = pt }))
	}
	s := acc.Summary(5)

	want := []model.RideTypeCount{{Type: "UberX", Count: 3}, {Type: "UberXL", Count: 2}, {Type: "Comfort", Count: 1}}
	if len(s.RideTypes) != len(want) {
		t.Fatalf("RideTypes = %+v, want %+v", s.RideTypes, want)
	}
	for i := range want {
		if s.RideTypes[i] != want[i] {
			t.Errorf("RideTypes[%d] = %+v, want %+v", i, s.RideTypes[i], want[i])
		}
	}
}

func TestTripAccumulator_Surge(t *testing.T) {
	acc := NewTripAccumulator(time.UTC)
	acc.Add(trip(func(r *model.TripRecord) { r.SurgeMultiplier = "1.5"; r.IsSurged = "true" }))
	acc.Add(trip(func(r *model.TripRecord) { r.SurgeMultiplier = "2.0" }))
	acc.Add(trip(func(r *model.TripRecord) { r.SurgeMultiplier = "1" }))
	s := acc.Summary(5)

	if s.AvgSurgeMultiplier != "1.75" {
		t.Errorf("AvgSurgeMultiplier = %q, want 1.75", s.AvgSurgeMultiplier)
	}
	if s.SurgeCount != 1 {
		t.Errorf("SurgeCount = %d, want 1", s.SurgeCount)
	}
}

func TestTripAccumulator_NoSurge(t *testing.T) {
	acc := NewTripAccumulator(time.UTC)
	acc.Add(trip())
	if got := acc.Summary(5).AvgSurgeMultiplier; got != "0.00" {
		t.Errorf("AvgSurgeMultiplier = %q, want 0.00", got)
	}
}

func TestTripAccumulator_Heatmap(t *testing.T) {
	acc := NewTripAccumulator(time.UTC)
	acc.Add(trip(func(r *model.TripRecord) {
		r.PickupLat, r.PickupLng = "0", "0"
		r.DropoffLat, r.DropoffLng = "40.0", "-73.0"
	}))
	acc.Add(trip(func(r *model.TripRecord) {
		r.PickupLat, r.PickupLng = "40.0", "-73.0"
		r.DropoffLat, r.DropoffLng = "41.5", ""
	}))
	s := acc.Summary(5)

	if len(s.HeatmapData.Pickup) != 1 || s.HeatmapData.Pickup[0] != [2]float64{40.0, -73.0} {
		t.Errorf("Pickup = %v, want [[40 -73]]", s.HeatmapData.Pickup)
	}
	if len(s.HeatmapData.Dropoff) != 1 {
		t.Errorf("Dropoff = %v, want one point", s.HeatmapData.Dropoff)
	}
}

func TestTripAccumulator_TotalsAndFlags(t *testing.T) {
	acc := NewTripAccumulator(time.UTC)
	acc.Add(trip(func(r *model.TripRecord) { r.IsFareSplit = "true"; r.DurationSeconds = "3600" }))
	acc.Add(trip(func(r *model.TripRecord) { r.IsMultiDestination = "1"; r.DurationSeconds = "1800"; r.DistanceMiles = "bad" }))
	s := acc.Summary(5)

	if s.TotalMiles != "3.50" {
		t.Errorf("TotalMiles = %q, want 3.50", s.TotalMiles)
	}
	if s.TotalDurationHours != "1.5" {
		t.Errorf("TotalDurationHours = %q, want 1.5", s.TotalDurationHours)
	}
	if s.SplitFareCount != 1 || s.MultiDestCount != 1 {
		t.Errorf("split %d multi %d, want 1 and 1", s.SplitFareCount, s.MultiDestCount)
	}
	if s.TimeOfDayCounts.Morning != 2 {
		t.Errorf("Morning = %d, want 2", s.TimeOfDayCounts.Morning)
	}
	if s.DayOfWeekCounts[1] != 2 {
		t.Errorf("Monday count = %d, want 2", s.DayOfWeekCounts[1])
	}
	if s.MaxStreak != 1 {
		t.Errorf("MaxStreak = %d, want 1", s.MaxStreak)
	}
}

func TestTripAccumulator_CityTieBreak(t *testing.T) {
	acc := NewTripAccumulator(time.UTC)
	for _, c := range []string{"Boston", "Austin", "Austin", "Boston", "", "Chicago"} {
		acc.Add(trip(func(r *model.TripRecord) { r.City = c }))
	}
	s := acc.Summary(5)

	if len(s.TopCities) != 3 {
		t.Fatalf("TopCities = %+v, want 3 entries (empty city skipped)", s.TopCities)
	}
	if s.TopCities[0].City != "Boston" || s.TopCities[1].City != "Austin" {
		t.Errorf("tie order = %q, %q; want Boston, Austin", s.TopCities[0].City, s.TopCities[1].City)
	}
}

// Year routing prefers UTC while hour and weekday prefer local time.
func TestAggregateTrips_TimestampPreferenceAsymmetry(t *testing.T) {
	tr := trip(func(r *model.TripRecord) {
		r.RequestTimeLocal = "2023-12-31 23:30:00"
		r.RequestTimeUTC = "2024-01-01 04:30:00 +0000 UTC"
	})
	life, years := AggregateTrips([]model.TripRecord{tr}, utcOpts())

	if _, ok := years[2024]; !ok {
		t.Fatalf("years = %v, want trip routed to 2024 by UTC timestamp", years)
	}
	if _, ok := years[2023]; ok {
		t.Error("trip should not be routed to 2023")
	}
	if life.TimeOfDayCounts.Night != 1 {
		t.Errorf("TimeOfDay = %+v, want night from local 23:30", life.TimeOfDayCounts)
	}
	if life.DayOfWeekCounts[0] != 1 {
		t.Errorf("DayOfWeek = %v, want Sunday from local date", life.DayOfWeekCounts)
	}
}

func TestAggregateTrips_YearFallbacks(t *testing.T) {
	localOnly := trip(func(r *model.TripRecord) { r.RequestTimeUTC = ""; r.RequestTimeLocal = "2019-06-01 12:00:00" })
	neither := trip(func(r *model.TripRecord) { r.RequestTimeUTC = ""; r.RequestTimeLocal = "" })

	life, years := AggregateTrips([]model.TripRecord{localOnly, neither}, utcOpts())
	if years[2019].TotalTrips != 1 {
		t.Errorf("2019 TotalTrips = %d, want 1 (local fallback)", years[2019].TotalTrips)
	}
	if life.TotalTrips != 1 {
		t.Errorf("lifetime TotalTrips = %d, want 1 (untimestamped trip discarded)", life.TotalTrips)
	}
}

func TestAggregateTrips_Empty(t *testing.T) {
	life, years := AggregateTrips(nil, utcOpts())
	if len(years) != 0 {
		t.Errorf("years = %v, want none", years)
	}
	if life.TotalTrips != 0 || life.TotalSpent != "0.00" || life.MaxStreak != 0 {
		t.Errorf("empty lifetime = %+v", life)
	}
	if life.TopCities == nil || life.HeatmapData.Pickup == nil {
		t.Error("empty summary lists should be non-nil")
	}
}
