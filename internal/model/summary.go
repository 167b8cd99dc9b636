package model

// TimeOfDayCounts buckets activity by local hour:
// morning [5,12), afternoon [12,17), evening [17,21), night otherwise.
type TimeOfDayCounts struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
	Night     int `json:"night"`
}

// Total returns the sum of all four buckets.
func (t TimeOfDayCounts) Total() int {
	return t.Morning + t.Afternoon + t.Evening + t.Night
}

// CityCount is one entry of the ranked city list.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// RideTypeCount is one entry of the ranked ride-type list.
type RideTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Heatmap holds [lat, lng] pairs for pickups and dropoffs.
type Heatmap struct {
	Pickup  [][2]float64 `json:"pickup"`
	Dropoff [][2]float64 `json:"dropoff"`
}

// TripSummary is the formatted projection of one trip accumulator.
type TripSummary struct {
	TotalTrips         int             `json:"totalTrips"`
	TotalSpent         string          `json:"totalSpent"`
	TotalMiles         string          `json:"totalMiles"`
	TopCities          []CityCount     `json:"topCities"`
	TimeOfDayCounts    TimeOfDayCounts `json:"timeOfDayCounts"`
	TotalDurationHours string          `json:"totalDurationHours"`
	RideTypes          []RideTypeCount `json:"rideTypes"`
	SurgeCount         int             `json:"surgeCount"`
	AvgSurgeMultiplier string          `json:"avgSurgeMultiplier"`
	SplitFareCount     int             `json:"splitFareCount"`
	MultiDestCount     int             `json:"multiDestCount"`
	HeatmapData        Heatmap         `json:"heatmapData"`
	MaxStreak          int             `json:"maxStreak"`
	DayOfWeekCounts    [7]int          `json:"dayOfWeekCounts"`
}

// RestaurantStat is one entry of the ranked restaurant list.
type RestaurantStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Spend string `json:"spend"`
}

// ItemCount is one entry of the ranked item list.
type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// EatsSummary is the formatted projection of one order accumulator.
type EatsSummary struct {
	TotalOrders     int              `json:"totalOrders"`
	TotalSpent      string           `json:"totalSpent"`
	TopRestaurants  []RestaurantStat `json:"topRestaurants"`
	TopItems        []ItemCount      `json:"topItems"`
	MaxStreak       int              `json:"maxStreak"`
	DayOfWeekCounts [7]int           `json:"dayOfWeekCounts"`
	TimeOfDayCounts TimeOfDayCounts  `json:"timeOfDayCounts"`
}

// EmptyTripSummary is the zero-valued summary used when a year has no rides.
func EmptyTripSummary() TripSummary {
	return TripSummary{
		TotalSpent:         "0.00",
		TotalMiles:         "0.00",
		TopCities:          []CityCount{},
		TotalDurationHours: "0.0",
		RideTypes:          []RideTypeCount{},
		AvgSurgeMultiplier: "0.00",
		HeatmapData: Heatmap{
			Pickup:  [][2]float64{},
			Dropoff: [][2]float64{},
		},
	}
}

// EmptyEatsSummary is the zero-valued summary used when a year has no orders.
func EmptyEatsSummary() EatsSummary {
	return EatsSummary{
		TotalSpent:     "0.00",
		TopRestaurants: []RestaurantStat{},
		TopItems:       []ItemCount{},
	}
}
