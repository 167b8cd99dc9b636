package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ridewrap/internal/cli"
	"github.com/theirongolddev/ridewrap/internal/model"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Lifetime and per-year overview",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	res, err := loadReport()
	if err != nil {
		return err
	}
	printWarnings(res)

	report := res.Report
	lifetime, _ := report.Year(model.LifetimeLabel)
	if lifetime.Trips.TotalTrips == 0 && lifetime.Eats.TotalOrders == 0 {
		fmt.Println("\n  No trips or orders found.")
		fmt.Printf("  Point --data-dir at an unpacked export (looked in %s).\n", res.DataDir)
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("RIDEWRAP  Year in Review"))
	fmt.Println()
	fmt.Print(cli.RenderKV([][2]string{
		{"Member since", report.Profile.MemberSince},
		{"Avg rating", report.Profile.AvgRating},
		{"Years", fmt.Sprintf("%d", len(report.Years)-1)},
	}))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title: "Lifetime",
		Rows: [][]string{
			{"Trips", cli.FormatCount(lifetime.Trips.TotalTrips)},
			{"Ride spend", cli.FormatMoney(lifetime.Trips.TotalSpent)},
			{"Distance", cli.FormatMiles(lifetime.Trips.TotalMiles)},
			{"Time riding", cli.FormatHours(lifetime.Trips.TotalDurationHours)},
			{"Longest ride streak", cli.FormatStreak(lifetime.Trips.MaxStreak)},
			{"---"},
			{"Orders", cli.FormatCount(lifetime.Eats.TotalOrders)},
			{"Eats spend", cli.FormatMoney(lifetime.Eats.TotalSpent)},
			{"Longest order streak", cli.FormatStreak(lifetime.Eats.MaxStreak)},
		},
	}))
	fmt.Println()

	rows := make([][]string, 0, len(report.Years))
	for _, e := range report.Years {
		if e.Label == model.LifetimeLabel {
			continue
		}
		rows = append(rows, []string{
			e.Label,
			cli.FormatCount(e.Summary.Trips.TotalTrips),
			cli.FormatMoney(e.Summary.Trips.TotalSpent),
			cli.FormatMiles(e.Summary.Trips.TotalMiles),
			cli.FormatCount(e.Summary.Eats.TotalOrders),
			cli.FormatMoney(e.Summary.Eats.TotalSpent),
		})
	}
	if len(rows) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Year",
			Headers: []string{"Year", "Trips", "Ride $", "Miles", "Orders", "Eats $"},
			Rows:    rows,
		}))
		fmt.Println()
	}
	return nil
}
