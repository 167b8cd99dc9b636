package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ridewrap/internal/cli"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List the years present in the export",
	Args:  cobra.NoArgs,
	RunE:  runYears,
}

func init() {
	rootCmd.AddCommand(yearsCmd)
}

func runYears(_ *cobra.Command, _ []string) error {
	res, err := loadReport()
	if err != nil {
		return err
	}
	printWarnings(res)

	rows := make([][]string, 0, len(res.Report.Years))
	for _, e := range res.Report.Years {
		t, o := e.Summary.Trips, e.Summary.Eats
		rows = append(rows, []string{
			e.Label,
			cli.FormatCount(t.TotalTrips),
			cli.FormatMoney(t.TotalSpent),
			cli.FormatMiles(t.TotalMiles),
			fmt.Sprintf("%d", t.MaxStreak),
			cli.FormatCount(o.TotalOrders),
			cli.FormatMoney(o.TotalSpent),
			fmt.Sprintf("%d", o.MaxStreak),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bucket", "Trips", "Ride $", "Miles", "Ride streak", "Orders", "Eats $", "Eats streak"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
