package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/ridewrap/internal/model"
)

func line(ts, restaurant, price, item, qty string) model.OrderLine {
	return model.OrderLine{
		RequestTimeLocal: ts,
		RestaurantName:   restaurant,
		OrderPrice:       price,
		ItemName:         item,
		ItemQuantity:     qty,
	}
}

func TestNormalizeRestaurant(t *testing.T) {
	tests := map[string]string{
		"Joe's Pizza (Downtown)": "Joe's Pizza",
		"Chipotle (Main St)":     "Chipotle",
		"Chipotle":               "Chipotle",
		"Thai (Express) Kitchen": "Thai Kitchen",
		"  Sweetgreen  ":         "Sweetgreen",
	}
	for in, want := range tests {
		if got := NormalizeRestaurant(in); got != want {
			t.Errorf("NormalizeRestaurant(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOrderAccumulator_DedupSpend(t *testing.T) {
	for _, n := range []int{1, 5} {
		acc := NewOrderAccumulator(time.UTC)
		for i := 0; i < n; i++ {
			acc.Add(line("2024-02-10 19:00:00", "Chipotle (Main St)", "23.40", "Burrito", "1"))
		}
		s := acc.Summary(5)
		if s.TotalSpent != "23.40" {
			t.Errorf("N=%d TotalSpent = %q, want 23.40", n, s.TotalSpent)
		}
		if s.TotalOrders != 1 {
			t.Errorf("N=%d TotalOrders = %d, want 1", n, s.TotalOrders)
		}
		if len(s.TopItems) != 1 || s.TopItems[0].Count != n {
			t.Errorf("N=%d TopItems = %+v, want Burrito x%d", n, s.TopItems, n)
		}
	}
}

func TestOrderAccumulator_RestaurantMerge(t *testing.T) {
	acc := NewOrderAccumulator(time.UTC)
	acc.Add(line("2024-02-10 19:00:00", "Chipotle (Main St)", "10.00", "Bowl", "1"))
	acc.Add(line("2024-02-11 12:30:00", "Chipotle (5th Ave)", "12.50", "Bowl", "2"))
	acc.Add(line("2024-02-11 12:30:00", "Chipotle (5th Ave)", "12.50", "Chips", ""))
	acc.Add(line("2024-02-12 20:00:00", "Shake Shack", "15.00", "Burger", "1"))
	s := acc.Summary(5)

	if len(s.TopRestaurants) != 2 {
		t.Fatalf("TopRestaurants = %+v", s.TopRestaurants)
	}
	top := s.TopRestaurants[0]
	if top.Name != "Chipotle" || top.Count != 2 || top.Spend != "22.50" {
		t.Errorf("top restaurant = %+v, want Chipotle x2 22.50", top)
	}
	if s.TotalSpent != "37.50" || s.TotalOrders != 3 {
		t.Errorf("totals = %s / %d, want 37.50 / 3", s.TotalSpent, s.TotalOrders)
	}
	if s.TopItems[0].Name != "Bowl" || s.TopItems[0].Count != 3 {
		t.Errorf("top item = %+v, want Bowl x3", s.TopItems[0])
	}
	if s.MaxStreak != 3 {
		t.Errorf("MaxStreak = %d, want 3", s.MaxStreak)
	}
}

// Repeated lines of one order each count toward day-of-week and time-of-day.
func TestOrderAccumulator_PerLineDateCounters(t *testing.T) {
	acc := NewOrderAccumulator(time.UTC)
	acc.Add(line("2024-03-04 08:00:00", "Bagels", "9.00", "Bagel", "1"))
	acc.Add(line("2024-03-04 08:00:00", "Bagels", "9.00", "Coffee", "1"))
	s := acc.Summary(5)

	if s.DayOfWeekCounts[1] != 2 {
		t.Errorf("Monday = %d, want 2", s.DayOfWeekCounts[1])
	}
	if s.TimeOfDayCounts.Morning != 2 {
		t.Errorf("Morning = %d, want 2", s.TimeOfDayCounts.Morning)
	}
	if s.MaxStreak != 1 {
		t.Errorf("MaxStreak = %d, want 1", s.MaxStreak)
	}
}

func TestOrderAccumulator_DedupKeyIsRaw(t *testing.T) {
	acc := NewOrderAccumulator(time.UTC)
	acc.Add(line("2024-03-04 08:00:00", "Chipotle (Main St)", "10.00", "Bowl", "1"))
	acc.Add(line("2024-03-04 08:00:00", "Chipotle (5th Ave)", "11.00", "Bowl", "1"))
	s := acc.Summary(5)

	if s.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2 (key uses raw restaurant text)", s.TotalOrders)
	}
	if s.TotalSpent != "21.00" {
		t.Errorf("TotalSpent = %q, want 21.00", s.TotalSpent)
	}
}

func TestAggregateOrders_YearRouting(t *testing.T) {
	lines := []model.OrderLine{
		line("2022-05-01 13:00:00", "Pho 88", "18.00", "Pho", "1"),
		line("2023-05-01 13:00:00", "Pho 88", "19.00", "Pho", "1"),
		line("", "Pho 88", "50.00", "Pho", "1"),
	}
	life, years := AggregateOrders(lines, utcOpts())

	if life.TotalOrders != 2 || life.TotalSpent != "37.00" {
		t.Errorf("lifetime = %d / %s, want 2 / 37.00", life.TotalOrders, life.TotalSpent)
	}
	if years[2022].TotalSpent != "18.00" || years[2023].TotalSpent != "19.00" {
		t.Errorf("per-year spend = %s / %s", years[2022].TotalSpent, years[2023].TotalSpent)
	}
}
