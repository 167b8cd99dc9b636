// Package store provides a SQLite-backed cache for computed reports.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/ridewrap/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no report is cached for a fingerprint.
var ErrNotFound = errors.New("report not cached")

// Cache provides SQLite-backed report caching.
type Cache struct {
	db *sql.DB
}

// Run describes one stored aggregation run.
type Run struct {
	ID          string
	Fingerprint string
	DataDir     string
	CreatedAt   time.Time
	Files       int
	ParseErrors int
	FileErrors  int
}

// FileInfo is an input file that contributed to a run.
type FileInfo struct {
	Path      string
	Kind      string
	MtimeNs   int64
	SizeBytes int64
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetReport returns the report stored for fingerprint, or ErrNotFound.
func (c *Cache) GetReport(fingerprint string) (model.Report, Run, error) {
	var (
		run       Run
		created   string
		reportRaw string
	)
	err := c.db.QueryRow(`SELECT run_id, fingerprint, data_dir, created_at,
		files, parse_errors, file_errors, report_json
		FROM runs WHERE fingerprint = ?`, fingerprint).Scan(
		&run.ID, &run.Fingerprint, &run.DataDir, &created,
		&run.Files, &run.ParseErrors, &run.FileErrors, &reportRaw,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Report{}, Run{}, ErrNotFound
	}
	if err != nil {
		return model.Report{}, Run{}, err
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339, created)

	var report model.Report
	if err := json.Unmarshal([]byte(reportRaw), &report); err != nil {
		return model.Report{}, Run{}, fmt.Errorf("decoding cached report: %w", err)
	}
	return report, run, nil
}

// SaveReport stores a report under a new run ID, replacing any earlier run
// with the same fingerprint. It returns the stored run.
func (c *Cache) SaveReport(run Run, files []FileInfo, report model.Report) (Run, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return Run{}, fmt.Errorf("encoding report: %w", err)
	}

	run.ID = uuid.NewString()
	run.CreatedAt = time.Now().UTC().Truncate(time.Second)

	tx, err := c.db.Begin()
	if err != nil {
		return Run{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM runs WHERE fingerprint = ?", run.Fingerprint); err != nil {
		return Run{}, err
	}

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, fingerprint, data_dir, created_at, files, parse_errors, file_errors, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Fingerprint, run.DataDir, run.CreatedAt.Format(time.RFC3339),
		run.Files, run.ParseErrors, run.FileErrors, string(data),
	)
	if err != nil {
		return Run{}, err
	}

	for _, f := range files {
		_, err = tx.Exec(`INSERT OR REPLACE INTO run_files
			(run_id, file_path, kind, mtime_ns, size_bytes)
			VALUES (?, ?, ?, ?, ?)`,
			run.ID, f.Path, f.Kind, f.MtimeNs, f.SizeBytes,
		)
		if err != nil {
			return Run{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, err
	}
	return run, nil
}

// ListRuns returns stored runs, most recent first. limit <= 0 means all.
func (c *Cache) ListRuns(limit int) ([]Run, error) {
	query := `SELECT run_id, fingerprint, data_dir, created_at, files, parse_errors, file_errors
		FROM runs ORDER BY created_at DESC, run_id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Fingerprint, &r.DataDir, &created,
			&r.Files, &r.ParseErrors, &r.FileErrors); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunFiles returns the input files recorded for a run.
func (c *Cache) RunFiles(runID string) ([]FileInfo, error) {
	rows, err := c.db.Query(`SELECT file_path, kind, mtime_ns, size_bytes
		FROM run_files WHERE run_id = ? ORDER BY file_path`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var files []FileInfo
	for rows.Next() {
		var f FileInfo
		if err := rows.Scan(&f.Path, &f.Kind, &f.MtimeNs, &f.SizeBytes); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Clear removes every cached run.
func (c *Cache) Clear() error {
	_, err := c.db.Exec("DELETE FROM runs")
	return err
}

// RunCount returns the number of cached runs.
func (c *Cache) RunCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}
