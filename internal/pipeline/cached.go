package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/theirongolddev/ridewrap/internal/model"
	"github.com/theirongolddev/ridewrap/internal/source"
	"github.com/theirongolddev/ridewrap/internal/store"
)

// ReportResult is a built report plus how it was obtained.
type ReportResult struct {
	Report      model.Report
	DataDir     string
	TotalFiles  int
	ParseErrors int
	FileErrors  int
	CacheHit    bool
	RunID       string
}

// BuildReport loads the export under dataDir and aggregates it.
func BuildReport(dataDir string, opts Options, progressFn ProgressFunc) (*ReportResult, error) {
	lr, err := Load(dataDir, progressFn)
	if err != nil {
		return nil, err
	}
	return &ReportResult{
		Report:      Build(lr.Input, opts),
		DataDir:     dataDir,
		TotalFiles:  lr.TotalFiles,
		ParseErrors: lr.ParseErrors,
		FileErrors:  lr.FileErrors,
	}, nil
}

// BuildReportWithCache returns the cached report when no input file and no
// option changed since it was stored. Otherwise it recomputes from scratch
// and stores the result under a fresh run.
func BuildReportWithCache(dataDir string, opts Options, cache *store.Cache, progressFn ProgressFunc) (*ReportResult, error) {
	opts = opts.withDefaults()

	files, err := source.ScanDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dataDir, err)
	}
	fp := Fingerprint(files, opts)

	report, run, err := cache.GetReport(fp)
	switch {
	case err == nil:
		return &ReportResult{
			Report:      report,
			DataDir:     dataDir,
			TotalFiles:  run.Files,
			ParseErrors: run.ParseErrors,
			FileErrors:  run.FileErrors,
			CacheHit:    true,
			RunID:       run.ID,
		}, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	lr := loadFiles(files, progressFn)
	res := &ReportResult{
		Report:      Build(lr.Input, opts),
		DataDir:     dataDir,
		TotalFiles:  lr.TotalFiles,
		ParseErrors: lr.ParseErrors,
		FileErrors:  lr.FileErrors,
	}

	tracked := make([]store.FileInfo, 0, len(files))
	for _, f := range files {
		tracked = append(tracked, store.FileInfo{
			Path:      f.Path,
			Kind:      f.Kind.String(),
			MtimeNs:   f.MtimeNs,
			SizeBytes: f.SizeBytes,
		})
	}
	saved, err := cache.SaveReport(store.Run{
		Fingerprint: fp,
		DataDir:     dataDir,
		Files:       lr.TotalFiles,
		ParseErrors: lr.ParseErrors,
		FileErrors:  lr.FileErrors,
	}, tracked, res.Report)
	if err == nil {
		res.RunID = saved.ID
	}
	return res, nil
}

// LoadReport builds the report for dataDir, going through the on-disk cache
// when useCache is set. Any cache failure falls back to an uncached build.
func LoadReport(dataDir string, opts Options, useCache bool, progressFn ProgressFunc) (*ReportResult, error) {
	if useCache {
		cache, err := store.Open(CachePath())
		if err == nil {
			res, loadErr := BuildReportWithCache(dataDir, opts, cache, progressFn)
			_ = cache.Close()
			if loadErr == nil {
				return res, nil
			}
		}
	}
	return BuildReport(dataDir, opts, progressFn)
}

// Fingerprint identifies one export state plus the options that shape the report.
func Fingerprint(files []source.DiscoveredFile, opts Options) string {
	opts = opts.withDefaults()
	h := sha256.New()
	for _, f := range files {
		h.Write([]byte(f.Path))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatInt(f.SizeBytes, 10)))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatInt(f.MtimeNs, 10)))
		h.Write([]byte{'\n'})
	}
	h.Write([]byte(opts.Location.String()))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(opts.TopN)))
	return hex.EncodeToString(h.Sum(nil))
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ridewrap")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "ridewrap")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "reports.db")
}
