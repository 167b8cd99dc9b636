// Package source discovers and decodes the CSV files of a data export.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoExportDir is returned when the export root is missing or not a directory.
var ErrNoExportDir = errors.New("export directory not found")

// filePatterns maps a lowercase file-name fragment to its kind. Order matters:
// "rating" must not shadow the more specific names.
var filePatterns = []struct {
	fragment string
	kind     Kind
}{
	{"trips_data", KindTrips},
	{"eats_order_details", KindOrders},
	{"profile_data", KindProfile},
	{"rating", KindRatings},
}

// Classify returns the kind of an export file from its base name.
func Classify(name string) Kind {
	lower := strings.ToLower(filepath.Base(name))
	if filepath.Ext(lower) != ".csv" {
		return KindUnknown
	}
	for _, p := range filePatterns {
		if strings.Contains(lower, p.fragment) {
			return p.kind
		}
	}
	return KindUnknown
}

// ScanDir walks the export directory and returns every recognised CSV file,
// sorted by path.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNoExportDir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", dir, ErrNoExportDir)
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		kind := Classify(d.Name())
		if kind == KindUnknown {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // file vanished mid-walk
		}
		files = append(files, DiscoveredFile{
			Path:      path,
			Kind:      kind,
			SizeBytes: fi.Size(),
			MtimeNs:   fi.ModTime().UnixNano(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// CountKinds returns how many files of each kind were discovered.
func CountKinds(files []DiscoveredFile) map[Kind]int {
	counts := make(map[Kind]int)
	for _, f := range files {
		counts[f.Kind]++
	}
	return counts
}
