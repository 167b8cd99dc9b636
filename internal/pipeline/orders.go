package pipeline

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/ridewrap/internal/model"
)

var parenthesized = regexp.MustCompile(`\s*\([^)]*\)`)

// NormalizeRestaurant strips parenthesized location suffixes:
// "Joe's Pizza (Downtown)" -> "Joe's Pizza".
func NormalizeRestaurant(name string) string {
	return strings.TrimSpace(parenthesized.ReplaceAllString(name, ""))
}

// orderKey identifies one logical order among its item lines. Both parts
// are the raw, unnormalized cell text.
func orderKey(l model.OrderLine) string {
	return l.RequestTimeLocal + "\x00" + l.RestaurantName
}

// OrderAccumulator folds food-delivery order lines for one year or lifetime.
// Spend is counted once per order key; items, dates and time-of-day are
// counted on every line.
type OrderAccumulator struct {
	loc *time.Location

	seen        map[string]decimal.Decimal
	spent       decimal.Decimal
	restaurants *counter
	restSpend   map[string]decimal.Decimal
	items       *counter
	timeOfDay   model.TimeOfDayCounts
	dayOfWeek   [7]int
	dates       dateSet
}

// NewOrderAccumulator returns an empty accumulator reading timestamps in loc.
func NewOrderAccumulator(loc *time.Location) *OrderAccumulator {
	if loc == nil {
		loc = time.Local
	}
	return &OrderAccumulator{
		loc:         loc,
		seen:        make(map[string]decimal.Decimal),
		restaurants: newCounter(),
		restSpend:   make(map[string]decimal.Decimal),
		items:       newCounter(),
		dates:       make(dateSet),
	}
}

// Add folds one order line.
func (a *OrderAccumulator) Add(l model.OrderLine) {
	key := orderKey(l)
	if _, dup := a.seen[key]; !dup {
		price := decimal.NewFromFloat(ParseAmount(l.OrderPrice))
		a.seen[key] = price
		a.spent = a.spent.Add(price)

		name := NormalizeRestaurant(l.RestaurantName)
		if name != "" {
			a.restaurants.add(name, 1)
			a.restSpend[name] = a.restSpend[name].Add(price)
		}
	}

	if item := strings.TrimSpace(l.ItemName); item != "" {
		a.items.add(item, ParseQuantity(l.ItemQuantity))
	}

	if ts, ok := ParseTimestamp(l.RequestTimeLocal, a.loc); ok {
		addTimeOfDay(&a.timeOfDay, ts.Hour())
		a.dayOfWeek[ts.Weekday()]++
		a.dates.add(ts)
	}
}

// Summary formats the accumulator with top-n ranked lists.
func (a *OrderAccumulator) Summary(n int) model.EatsSummary {
	s := model.EmptyEatsSummary()
	s.TotalOrders = len(a.seen)
	s.TotalSpent = a.spent.StringFixed(2)
	s.TimeOfDayCounts = a.timeOfDay
	s.DayOfWeekCounts = a.dayOfWeek
	s.MaxStreak = a.dates.streak()

	for _, r := range a.restaurants.top(n) {
		s.TopRestaurants = append(s.TopRestaurants, model.RestaurantStat{
			Name:  r.Key,
			Count: r.Count,
			Spend: a.restSpend[r.Key].StringFixed(2),
		})
	}
	for _, r := range a.items.top(n) {
		s.TopItems = append(s.TopItems, model.ItemCount{Name: r.Key, Count: r.Count})
	}
	return s
}

// orderYear derives the bucket year for an order line from local time only.
func orderYear(l model.OrderLine, loc *time.Location) (int, bool) {
	ts, ok := ParseTimestamp(l.RequestTimeLocal, loc)
	if !ok {
		return 0, false
	}
	return ts.Year(), true
}
