package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/ridewrap/internal/cli"
	"github.com/theirongolddev/ridewrap/internal/config"
	"github.com/theirongolddev/ridewrap/internal/source"
	"github.com/theirongolddev/ridewrap/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	if files, err := source.ScanDir(cfg.General.DataDir); err == nil && len(files) > 0 {
		kinds := source.CountKinds(files)
		fmt.Printf("\n  Found %s trip and %s order files in %s\n",
			cli.FormatCount(kinds[source.KindTrips]), cli.FormatCount(kinds[source.KindOrders]), cfg.General.DataDir)
	}

	vals := tui.SetupValuesFrom(cfg)
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	if err := vals.Apply(&cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `ridewrap setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
