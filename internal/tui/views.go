package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ridewrap/internal/cli"
	"github.com/theirongolddev/ridewrap/internal/model"
	"github.com/theirongolddev/ridewrap/internal/tui/components"
	"github.com/theirongolddev/ridewrap/internal/tui/theme"
)

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func renderOverview(entry model.YearEntry, profile model.Profile, w int) string {
	t := theme.Active
	trips, eats := entry.Summary.Trips, entry.Summary.Eats

	title := entry.Label
	if title == model.LifetimeLabel {
		title = "All time"
	}
	heading := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(title)
	if profile.MemberSince != "" {
		heading += lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			fmt.Sprintf("   member since %s · rating %s", profile.MemberSince, profile.AvgRating))
	}

	rides := components.MetricCardRow([]components.Metric{
		{Label: "Trips", Value: cli.FormatCount(trips.TotalTrips), Note: "streak " + cli.FormatStreak(trips.MaxStreak)},
		{Label: "Ride spend", Value: cli.FormatMoney(trips.TotalSpent)},
		{Label: "Distance", Value: cli.FormatMiles(trips.TotalMiles), Note: cli.FormatHours(trips.TotalDurationHours) + " riding"},
	}, t.Rides, w)

	food := components.MetricCardRow([]components.Metric{
		{Label: "Orders", Value: cli.FormatCount(eats.TotalOrders), Note: "streak " + cli.FormatStreak(eats.MaxStreak)},
		{Label: "Eats spend", Value: cli.FormatMoney(eats.TotalSpent)},
		{Label: "Favourite", Value: favourite(eats)},
	}, t.Eats, w)

	return lipgloss.JoinVertical(lipgloss.Left, heading, "", rides, food)
}

func favourite(eats model.EatsSummary) string {
	if len(eats.TopRestaurants) == 0 {
		return "-"
	}
	return eats.TopRestaurants[0].Name
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func renderRides(s model.TripSummary, w, topN int) string {
	t := theme.Active
	half := components.LayoutRow(w, 2)

	var cities, types []components.BarItem
	for _, c := range limit(s.TopCities, topN) {
		cities = append(cities, components.BarItem{Label: c.City, Value: c.Count})
	}
	for _, r := range limit(s.RideTypes, topN) {
		types = append(types, components.BarItem{Label: r.Type, Value: r.Count})
	}

	top := components.CardRow([]string{
		components.ContentCard("Top cities", components.RankedBars(cities, t.Rides, components.CardInnerWidth(half[0])), half[0]),
		components.ContentCard("Ride types", components.RankedBars(types, t.Rides, components.CardInnerWidth(half[1])), half[1]),
	})

	extras := strings.Join([]string{
		fmt.Sprintf("Surged trips      %d (avg ×%s)", s.SurgeCount, s.AvgSurgeMultiplier),
		fmt.Sprintf("Split fares       %d", s.SplitFareCount),
		fmt.Sprintf("Multi-stop trips  %d", s.MultiDestCount),
		fmt.Sprintf("Mapped pickups    %d", len(s.HeatmapData.Pickup)),
	}, "\n")

	bottom := components.CardRow([]string{
		components.ContentCard("When", renderRhythm(s.TimeOfDayCounts, s.DayOfWeekCounts, t.Rides, components.CardInnerWidth(half[0])), half[0]),
		components.ContentCard("Extras", extras, half[1]),
	})

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func renderEats(s model.EatsSummary, w, topN int) string {
	t := theme.Active
	half := components.LayoutRow(w, 2)

	var rest, items []components.BarItem
	for _, r := range limit(s.TopRestaurants, topN) {
		rest = append(rest, components.BarItem{Label: r.Name, Value: r.Count, Extra: cli.FormatMoney(r.Spend)})
	}
	for _, it := range limit(s.TopItems, topN) {
		items = append(items, components.BarItem{Label: it.Name, Value: it.Count})
	}

	top := components.CardRow([]string{
		components.ContentCard("Top restaurants", components.RankedBars(rest, t.Eats, components.CardInnerWidth(half[0])), half[0]),
		components.ContentCard("Top items", components.RankedBars(items, t.Eats, components.CardInnerWidth(half[1])), half[1]),
	})
	when := components.ContentCard("When", renderRhythm(s.TimeOfDayCounts, s.DayOfWeekCounts, t.Eats, components.CardInnerWidth(w)), w)

	return lipgloss.JoinVertical(lipgloss.Left, top, when)
}

// renderRhythm shows time-of-day bars and a weekday sparkline.
func renderRhythm(tod model.TimeOfDayCounts, dow [7]int, color lipgloss.Color, width int) string {
	bars := components.RankedBars([]components.BarItem{
		{Label: "Morning", Value: tod.Morning},
		{Label: "Afternoon", Value: tod.Afternoon},
		{Label: "Evening", Value: tod.Evening},
		{Label: "Night", Value: tod.Night},
	}, color, width)

	busiest := 0
	for i, n := range dow {
		if n > dow[busiest] {
			busiest = i
		}
	}
	week := "Sun→Sat  " + components.Sparkline(dow[:], color)
	if dow[busiest] > 0 {
		week += fmt.Sprintf("\nbusiest: %s", weekdays[busiest])
	}
	return bars + "\n\n" + week
}
