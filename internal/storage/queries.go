package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Get returns the cached body for url. It satisfies kmb.Store.
func (db *DB) Get(ctx context.Context, url string) ([]byte, bool, error) {
	var body []byte
	err := db.QueryRowContext(ctx, `SELECT body FROM stable_cache WHERE url = ?`, url).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache %s: %w", url, err)
	}
	return body, true, nil
}

// Set stores body for url, replacing any previous entry.
func (db *DB) Set(ctx context.Context, url string, body []byte) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO stable_cache (url, body) VALUES (?, ?)`,
		url, body)
	if err != nil {
		return fmt.Errorf("write cache %s: %w", url, err)
	}
	return nil
}

// Count returns the number of cached responses.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stable_cache`).Scan(&n)
	return n, err
}
