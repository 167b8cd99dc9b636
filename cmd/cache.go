package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ridewrap/internal/cli"
	"github.com/theirongolddev/ridewrap/internal/pipeline"
	"github.com/theirongolddev/ridewrap/internal/store"
)

var (
	cacheClear bool
	cacheShow  string
	cacheLimit int
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the report cache",
	Args:  cobra.NoArgs,
	RunE:  runCache,
}

func init() {
	cacheCmd.Flags().BoolVar(&cacheClear, "clear", false, "Delete every cached report")
	cacheCmd.Flags().StringVar(&cacheShow, "show", "", "List the input files of one run")
	cacheCmd.Flags().IntVar(&cacheLimit, "limit", 20, "Number of runs to list (0 for all)")
	rootCmd.AddCommand(cacheCmd)
}

func runCache(_ *cobra.Command, _ []string) error {
	cache, err := store.Open(pipeline.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer func() { _ = cache.Close() }()

	switch {
	case cacheClear:
		n, err := cache.RunCount()
		if err != nil {
			return err
		}
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Printf("  Removed %s cached reports from %s\n", cli.FormatCount(n), pipeline.CachePath())
		return nil

	case cacheShow != "":
		files, err := cache.RunFiles(cacheShow)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no files recorded for run %q", cacheShow)
		}
		rows := make([][]string, 0, len(files))
		for _, f := range files {
			rows = append(rows, []string{f.Kind, f.Path, cli.FormatNumber(f.SizeBytes)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Run " + cacheShow,
			Headers: []string{"Kind", "File", "Bytes"},
			Rows:    rows,
		}))
		return nil
	}

	runs, err := cache.ListRuns(cacheLimit)
	if err != nil {
		return err
	}
	fmt.Printf("  Cache: %s\n", pipeline.CachePath())
	if len(runs) == 0 {
		fmt.Println("  No cached reports.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.DataDir,
			cli.FormatCount(r.Files),
			cli.FormatCount(r.ParseErrors),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Run", "Created", "Data dir", "Files", "Bad rows"},
		Rows:    rows,
	}))
	return nil
}
