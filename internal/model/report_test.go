package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestYearsMarshalKeepsOrder(t *testing.T) {
	r := Report{
		Profile: Profile{MemberSince: "May 1, 2016", AvgRating: "4.90"},
		Years: Years{
			{Label: LifetimeLabel, Summary: YearSummary{Trips: EmptyTripSummary(), Eats: EmptyEatsSummary()}},
			{Label: "2024", Summary: YearSummary{Trips: EmptyTripSummary(), Eats: EmptyEatsSummary()}},
			{Label: "2021", Summary: YearSummary{Trips: EmptyTripSummary(), Eats: EmptyEatsSummary()}},
		},
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	iLife := strings.Index(s, `"Lifetime"`)
	i2024 := strings.Index(s, `"2024"`)
	i2021 := strings.Index(s, `"2021"`)
	if iLife < 0 || i2024 < 0 || i2021 < 0 {
		t.Fatalf("missing keys in %s", s)
	}
	if !(iLife < i2024 && i2024 < i2021) {
		t.Errorf("key order wrong: Lifetime@%d 2024@%d 2021@%d", iLife, i2024, i2021)
	}

	var back Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := strings.Join(back.Labels(), ",")
	if got != "Lifetime,2024,2021" {
		t.Errorf("labels after round trip = %q", got)
	}
	if back.Profile.AvgRating != "4.90" {
		t.Errorf("AvgRating = %q, want 4.90", back.Profile.AvgRating)
	}
}

func TestEmptySummariesEncodeEmptyLists(t *testing.T) {
	data, err := json.Marshal(EmptyTripSummary())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"topCities":[]`, `"rideTypes":[]`, `"pickup":[]`, `"totalSpent":"0.00"`, `"dayOfWeekCounts":[0,0,0,0,0,0,0]`} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded empty trip summary missing %s: %s", want, s)
		}
	}
}

func TestReportYearLookup(t *testing.T) {
	r := Report{Years: Years{{Label: LifetimeLabel}, {Label: "2023"}}}
	if _, ok := r.Year("lifetime"); !ok {
		t.Error("lifetime lookup should be case-insensitive")
	}
	if _, ok := r.Year("2023"); !ok {
		t.Error("2023 should be found")
	}
	if _, ok := r.Year("1999"); ok {
		t.Error("1999 should not be found")
	}
}

func TestRecordGet(t *testing.T) {
	r := Record{"Distance": " 3.2 ", "fare_amount": ""}
	if got := r.Get("distance_miles", "distance"); got != "3.2" {
		t.Errorf("Get alias = %q, want 3.2", got)
	}
	if got := r.Get("fare_amount"); got != "" {
		t.Errorf("Get empty = %q, want empty", got)
	}
}
