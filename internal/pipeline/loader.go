package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/ridewrap/internal/model"
	"github.com/theirongolddev/ridewrap/internal/source"
)

// LoadResult holds the decoded export plus bookkeeping about the files read.
type LoadResult struct {
	Input       Input
	Files       []source.DiscoveredFile
	TotalFiles  int
	ParsedFiles int
	ParseErrors int
	FileErrors  int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and decodes every export file under dataDir. Files are
// parsed by a bounded worker pool; records are then concatenated per kind in
// path order so the aggregation sees a deterministic sequence.
func Load(dataDir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}
	return loadFiles(files, progressFn), nil
}

func loadFiles(files []source.DiscoveredFile, progressFn ProgressFunc) *LoadResult {
	result := &LoadResult{
		Files:      files,
		TotalFiles: len(files),
	}
	if len(files) == 0 {
		return result
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = source.ParseFile(files[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()

	for _, pr := range results {
		if pr.Err != nil {
			result.FileErrors++
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors

		switch pr.File.Kind {
		case source.KindTrips:
			for _, r := range pr.Records {
				result.Input.Trips = append(result.Input.Trips, model.TripFromRecord(r))
			}
		case source.KindOrders:
			for _, r := range pr.Records {
				result.Input.Orders = append(result.Input.Orders, model.OrderLineFromRecord(r))
			}
		case source.KindProfile:
			result.Input.Profile = append(result.Input.Profile, pr.Records...)
		case source.KindRatings:
			result.Input.Ratings = append(result.Input.Ratings, pr.Records...)
		}
	}

	return result
}
