package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"sheetnorm/internal"
)

// DB records standardization runs so batch outcomes can be audited later.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  file TEXT NOT NULL,
  status TEXT NOT NULL,
  mappedCount INTEGER NOT NULL DEFAULT 0,
  unmappedCount INTEGER NOT NULL DEFAULT 0,
  conflictCount INTEGER NOT NULL DEFAULT 0,
  error TEXT NOT NULL DEFAULT '',
  reportJson TEXT NOT NULL DEFAULT '{}',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_file ON runs(file);

CREATE TABLE IF NOT EXISTS run_mappings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  original TEXT NOT NULL,
  canonical TEXT,
  score INTEGER NOT NULL,
  method TEXT NOT NULL DEFAULT '',
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_run_mappings_runId ON run_mappings(runId);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertRun stores one run outcome with its per-column mapping rows. A nil
// report records a failed run with only the error cause.
func (d *DB) InsertRun(traceID, file, status string, report *internal.Report, runErr string) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	mapped, unmapped, conflicts := 0, 0, 0
	reportJSON := "{}"
	if report != nil {
		mapped = report.MappedCount
		unmapped = len(report.Unmapped)
		conflicts = len(report.Conflicts)
		if blob, err := json.Marshal(report); err == nil {
			reportJSON = string(blob)
		}
	}

	res, err := tx.Exec(`
INSERT INTO runs (traceId, file, status, mappedCount, unmappedCount, conflictCount, error, reportJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, traceID, file, status, mapped, unmapped, conflicts, runErr, reportJSON)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if report != nil {
		stmt, err := tx.Prepare(`
INSERT INTO run_mappings (runId, original, canonical, score, method) VALUES (?, ?, ?, ?, ?)
`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()

		for _, entry := range report.Entries {
			if _, err := stmt.Exec(runID, entry.Original, entry.Canonical, entry.Score, string(entry.Method)); err != nil {
				return 0, err
			}
		}
	}

	return runID, tx.Commit()
}

func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, file, status, mappedCount, unmappedCount, conflictCount, error, createdAt
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRow
	for rows.Next() {
		var row internal.RunRow
		if err := rows.Scan(&row.ID, &row.TraceID, &row.File, &row.Status, &row.MappedCount, &row.UnmappedCount, &row.ConflictCount, &row.Error, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) GetRunMappings(runID int) ([]internal.MappingEntry, error) {
	rows, err := d.conn.Query(`
SELECT original, canonical, score, method FROM run_mappings WHERE runId = ? ORDER BY id ASC
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.MappingEntry
	for rows.Next() {
		var entry internal.MappingEntry
		var method string
		if err := rows.Scan(&entry.Original, &entry.Canonical, &entry.Score, &method); err != nil {
			return nil, err
		}
		entry.Method = internal.MappingMethod(method)
		out = append(out, entry)
	}
	return out, rows.Err()
}
