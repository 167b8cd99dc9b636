package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ridewrap/internal/cli"
	"github.com/theirongolddev/ridewrap/internal/geo"
)

var (
	hotspotKind  string
	hotspotLimit int
	hotspotLevel int
)

var hotspotsCmd = &cobra.Command{
	Use:   "hotspots [YEAR|lifetime]",
	Short: "Busiest pickup or dropoff areas",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHotspots,
}

func init() {
	hotspotsCmd.Flags().StringVar(&hotspotKind, "kind", "pickup", "Point set to bucket: pickup or dropoff")
	hotspotsCmd.Flags().IntVar(&hotspotLimit, "limit", 0, "Number of cells to show (default: from config)")
	hotspotsCmd.Flags().IntVar(&hotspotLevel, "level", 0, "S2 cell level, 1-30 (default: from config)")
	rootCmd.AddCommand(hotspotsCmd)
}

func runHotspots(_ *cobra.Command, args []string) error {
	var pickup bool
	switch hotspotKind {
	case "pickup":
		pickup = true
	case "dropoff":
	default:
		return fmt.Errorf("--kind must be pickup or dropoff, got %q", hotspotKind)
	}

	level := hotspotLevel
	if level == 0 {
		level = appCfg.Hotspots.Level
	}
	n := hotspotLimit
	if n == 0 {
		n = appCfg.Hotspots.Limit
	}

	res, err := loadReport()
	if err != nil {
		return err
	}
	printWarnings(res)

	label, ys, err := selectYear(res.Report, args)
	if err != nil {
		return err
	}

	points := ys.Trips.HeatmapData.Dropoff
	if pickup {
		points = ys.Trips.HeatmapData.Pickup
	}
	spots := geo.Hotspots(points, level, n)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HOTSPOTS  %s  %s", label, hotspotKind)))
	fmt.Println()

	if len(spots) == 0 {
		fmt.Println("  No coordinates recorded.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(spots))
	for i, h := range spots {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			h.Token,
			fmt.Sprintf("%.5f, %.5f", h.Lat, h.Lng),
			cli.FormatCount(h.Count),
			cli.FormatShare(h.Count, len(points)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Cell", "Center", "Points", "Share"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
