package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ridewrap/internal/cli"
	"github.com/theirongolddev/ridewrap/internal/model"
)

var tripsCmd = &cobra.Command{
	Use:   "trips [YEAR|lifetime]",
	Short: "Ride details for one year (default: lifetime)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTrips,
}

func init() {
	rootCmd.AddCommand(tripsCmd)
}

func runTrips(_ *cobra.Command, args []string) error {
	res, err := loadReport()
	if err != nil {
		return err
	}
	printWarnings(res)

	label, ys, err := selectYear(res.Report, args)
	if err != nil {
		return err
	}
	t := ys.Trips

	fmt.Println()
	fmt.Println(cli.RenderTitle("RIDES  " + label))
	fmt.Println()

	if t.TotalTrips == 0 {
		fmt.Println("  No completed trips.")
		fmt.Println()
		return nil
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Rows: [][]string{
			{"Trips", cli.FormatCount(t.TotalTrips)},
			{"Spent", cli.FormatMoney(t.TotalSpent)},
			{"Distance", cli.FormatMiles(t.TotalMiles)},
			{"Time riding", cli.FormatHours(t.TotalDurationHours)},
			{"Longest streak", cli.FormatStreak(t.MaxStreak)},
			{"---"},
			{"Surge trips", fmt.Sprintf("%s (%s)", cli.FormatCount(t.SurgeCount), cli.FormatShare(t.SurgeCount, t.TotalTrips))},
			{"Avg surge", t.AvgSurgeMultiplier + "x"},
			{"Split fares", cli.FormatCount(t.SplitFareCount)},
			{"Multi-stop", cli.FormatCount(t.MultiDestCount)},
		},
	}))
	fmt.Println()

	if len(t.TopCities) > 0 {
		rows := make([][]string, 0, len(t.TopCities))
		for i, c := range t.TopCities {
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), c.City, cli.FormatCount(c.Count), cli.FormatShare(c.Count, t.TotalTrips)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top Cities",
			Headers: []string{"#", "City", "Trips", "Share"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if len(t.RideTypes) > 0 {
		rows := make([][]string, 0, len(t.RideTypes))
		for _, rt := range limit(t.RideTypes, appCfg.General.TopN) {
			rows = append(rows, []string{rt.Type, cli.FormatCount(rt.Count), cli.FormatShare(rt.Count, t.TotalTrips)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Ride Types",
			Headers: []string{"Type", "Trips", "Share"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	printRhythm(t.TimeOfDayCounts, t.DayOfWeekCounts)
	return nil
}

// printRhythm renders the time-of-day bars and the weekday sparkline.
func printRhythm(tod model.TimeOfDayCounts, dow [7]int) {
	peak := max(tod.Morning, tod.Afternoon, tod.Evening, tod.Night)
	fmt.Println(cli.RenderBar("Morning", tod.Morning, peak, 30))
	fmt.Println(cli.RenderBar("Afternoon", tod.Afternoon, peak, 30))
	fmt.Println(cli.RenderBar("Evening", tod.Evening, peak, 30))
	fmt.Println(cli.RenderBar("Night", tod.Night, peak, 30))
	fmt.Println()

	busiest := 0
	for d := range dow {
		if dow[d] > dow[busiest] {
			busiest = d
		}
	}
	fmt.Printf("  Sun→Sat  %s   busiest: %s\n", cli.RenderSparkline(dow[:]), cli.FormatDayOfWeek(busiest))
	fmt.Println()
}

func limit[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
