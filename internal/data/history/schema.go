package history

import (
	"database/sql"
	"fmt"
)

const SchemaVersion = 1

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS lint_runs (
  project_key TEXT NOT NULL DEFAULT 'default',
  run_id TEXT NOT NULL,
  schema_version INTEGER NOT NULL,
  ts_utc TEXT NOT NULL,
  file_count INTEGER NOT NULL,
  finding_count INTEGER NOT NULL,
  error_count INTEGER NOT NULL,
  warning_count INTEGER NOT NULL,
  info_count INTEGER NOT NULL,
  verdict TEXT NOT NULL,
  created_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP),
  PRIMARY KEY (project_key, run_id)
);
CREATE INDEX IF NOT EXISTS idx_lint_runs_ts ON lint_runs(ts_utc);
CREATE INDEX IF NOT EXISTS idx_lint_runs_project_key ON lint_runs(project_key);
`,
	},
}

func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return err
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		if _, err := db.Exec(m.sql); err != nil {
			return fmt.Errorf("apply migration %d: %w", m.version, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
	}
	return nil
}
