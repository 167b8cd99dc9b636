// Package cmd implements the ridewrap CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ridewrap/internal/cli"
	"github.com/theirongolddev/ridewrap/internal/config"
	"github.com/theirongolddev/ridewrap/internal/model"
	"github.com/theirongolddev/ridewrap/internal/pipeline"
)

var (
	flagDataDir  string
	flagTimezone string
	flagTop      int
	flagNoCache  bool
	flagQuiet    bool
)

// appCfg is the effective configuration: file, then environment, then flags.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "ridewrap",
	Short: "Year-in-review for your ride and food-delivery history",
	Long: "Summarize a personal ride-hailing and food-delivery data export:\n" +
		"trips, spend, cities, streaks and favourite restaurants, per year and lifetime.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", ".", "Export directory")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "IANA timezone for dates (default: system)")
	rootCmd.PersistentFlags().IntVar(&flagTop, "top", pipeline.DefaultTopN, "Length of ranked lists")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the report cache and recompute")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadSettings merges .env, the config file and explicitly set flags into appCfg.
func loadSettings(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.General.DataDir = flagDataDir
	}
	if flags.Changed("timezone") {
		cfg.General.Timezone = flagTimezone
	}
	if flags.Changed("top") {
		cfg.General.TopN = flagTop
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !flagNoCache
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	appCfg = cfg
	return nil
}

func pipelineOptions() (pipeline.Options, error) {
	loc, err := appCfg.Location()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{Location: loc, TopN: appCfg.General.TopN}, nil
}

// loadReport is the shared report building path used by all commands.
// It goes through the report cache unless disabled.
func loadReport() (*pipeline.ReportResult, error) {
	opts, err := pipelineOptions()
	if err != nil {
		return nil, err
	}
	dataDir := appCfg.General.DataDir

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", dataDir)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
	}

	res, err := pipeline.LoadReport(dataDir, opts, appCfg.Cache.Enabled, progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet {
		if res.CacheHit {
			fmt.Fprintf(os.Stderr, "  Loaded report from cache (%d files)\n", res.TotalFiles)
		} else if res.TotalFiles > 0 {
			fmt.Fprintf(os.Stderr, "\r  Parsed %d files    \n", res.TotalFiles)
		}
	}
	return res, nil
}

// selectYear resolves an optional YEAR|lifetime argument.
func selectYear(report model.Report, args []string) (string, model.YearSummary, error) {
	label := model.LifetimeLabel
	if len(args) > 0 {
		label = args[0]
	}
	ys, ok := report.Year(label)
	if !ok {
		return "", model.YearSummary{}, fmt.Errorf("no data for %q (available: %s)", label, strings.Join(report.Labels(), ", "))
	}
	if strings.EqualFold(label, model.LifetimeLabel) {
		label = model.LifetimeLabel
	}
	return label, ys, nil
}

func printWarnings(res *pipeline.ReportResult) {
	if res.FileErrors > 0 {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf("%d files could not be read", res.FileErrors)))
	}
	if res.ParseErrors > 0 {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf("%d malformed rows skipped", res.ParseErrors)))
	}
}
