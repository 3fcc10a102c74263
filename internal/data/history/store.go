package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"uilint/internal/engine/model"
	"uilint/internal/engine/report"
)

const driverName = "sqlite"

// Snapshot is one persisted lint-run summary row.
type Snapshot struct {
	RunID         string
	SchemaVersion int
	Timestamp     time.Time
	FileCount     int
	FindingCount  int
	ErrorCount    int
	WarningCount  int
	InfoCount     int
	Verdict       string
}

// FromBatch summarizes a batch into a snapshot row.
func FromBatch(b report.Batch) Snapshot {
	return Snapshot{
		RunID:         b.RunID,
		SchemaVersion: SchemaVersion,
		Timestamp:     b.GeneratedAt,
		FileCount:     len(b.Reports),
		FindingCount:  b.FindingCount(),
		ErrorCount:    b.Totals[model.SeverityError],
		WarningCount:  b.Totals[model.SeverityWarning],
		InfoCount:     b.Totals[model.SeverityInfo],
		Verdict:       string(b.Verdict),
	}
}

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SaveSnapshot(projectKey string, snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectKey = strings.TrimSpace(projectKey)
	if projectKey == "" {
		projectKey = "default"
	}
	if snapshot.RunID == "" {
		return fmt.Errorf("snapshot run id must not be empty")
	}
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}
	if snapshot.SchemaVersion == 0 {
		snapshot.SchemaVersion = SchemaVersion
	}
	if snapshot.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported snapshot schema version %d", snapshot.SchemaVersion)
	}

	_, err := s.db.Exec(`
INSERT OR REPLACE INTO lint_runs (
  project_key, run_id, schema_version, ts_utc,
  file_count, finding_count, error_count, warning_count, info_count, verdict
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		projectKey,
		snapshot.RunID,
		snapshot.SchemaVersion,
		snapshot.Timestamp.UTC().Format(time.RFC3339Nano),
		snapshot.FileCount,
		snapshot.FindingCount,
		snapshot.ErrorCount,
		snapshot.WarningCount,
		snapshot.InfoCount,
		snapshot.Verdict,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Recent returns up to limit snapshots for the project, newest first.
func (s *Store) Recent(projectKey string, limit int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projectKey = strings.TrimSpace(projectKey)
	if projectKey == "" {
		projectKey = "default"
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
SELECT run_id, schema_version, ts_utc,
  file_count, finding_count, error_count, warning_count, info_count, verdict
FROM lint_runs
WHERE project_key = ?
ORDER BY ts_utc DESC
LIMIT ?`, projectKey, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var ts string
		if err := rows.Scan(
			&snap.RunID, &snap.SchemaVersion, &ts,
			&snap.FileCount, &snap.FindingCount,
			&snap.ErrorCount, &snap.WarningCount, &snap.InfoCount,
			&snap.Verdict,
		); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			snap.Timestamp = parsed
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
