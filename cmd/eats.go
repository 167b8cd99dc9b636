package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ridewrap/internal/cli"
)

var eatsCmd = &cobra.Command{
	Use:   "eats [YEAR|lifetime]",
	Short: "Food-delivery details for one year (default: lifetime)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEats,
}

func init() {
	rootCmd.AddCommand(eatsCmd)
}

func runEats(_ *cobra.Command, args []string) error {
	res, err := loadReport()
	if err != nil {
		return err
	}
	printWarnings(res)

	label, ys, err := selectYear(res.Report, args)
	if err != nil {
		return err
	}
	e := ys.Eats

	fmt.Println()
	fmt.Println(cli.RenderTitle("EATS  " + label))
	fmt.Println()

	if e.TotalOrders == 0 {
		fmt.Println("  No completed orders.")
		fmt.Println()
		return nil
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Rows: [][]string{
			{"Orders", cli.FormatCount(e.TotalOrders)},
			{"Spent", cli.FormatMoney(e.TotalSpent)},
			{"Longest streak", cli.FormatStreak(e.MaxStreak)},
		},
	}))
	fmt.Println()

	if len(e.TopRestaurants) > 0 {
		rows := make([][]string, 0, len(e.TopRestaurants))
		for i, r := range e.TopRestaurants {
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), r.Name, cli.FormatCount(r.Count), cli.FormatMoney(r.Spend)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top Restaurants",
			Headers: []string{"#", "Restaurant", "Orders", "Spent"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if len(e.TopItems) > 0 {
		rows := make([][]string, 0, len(e.TopItems))
		for i, it := range e.TopItems {
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), it.Name, cli.FormatCount(it.Count)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top Items",
			Headers: []string{"#", "Item", "Qty"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	printRhythm(e.TimeOfDayCounts, e.DayOfWeekCounts)
	return nil
}
