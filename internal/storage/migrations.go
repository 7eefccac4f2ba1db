package storage

import "fmt"

// migrate creates the cache schema if it doesn't exist.
func (db *DB) migrate() error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	db.logger.Info("database migrations applied")
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS stable_cache (
		url        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		fetched_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`,
}
