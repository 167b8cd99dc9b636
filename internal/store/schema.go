package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id               TEXT PRIMARY KEY,
    fingerprint          TEXT NOT NULL UNIQUE,
    data_dir             TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    files                INTEGER NOT NULL DEFAULT 0,
    parse_errors         INTEGER NOT NULL DEFAULT 0,
    file_errors          INTEGER NOT NULL DEFAULT 0,
    report_json          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_files (
    run_id               TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    file_path            TEXT NOT NULL,
    kind                 TEXT NOT NULL,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    PRIMARY KEY (run_id, file_path)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
