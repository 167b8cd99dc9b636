package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportIndent bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the report as JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "Output file (- for stdout)")
	exportCmd.Flags().BoolVar(&exportIndent, "indent", true, "Pretty-print the JSON")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	res, err := loadReport()
	if err != nil {
		return err
	}
	printWarnings(res)

	var w io.Writer = os.Stdout
	if exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	if exportIndent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res.Report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if exportOut != "-" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s\n", exportOut)
	}
	return nil
}
