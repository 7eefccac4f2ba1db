package storage

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDSN is a shared in-memory database: it lives exactly as long as
// the process, like the map-backed store.
const DefaultDSN = "file:kmbeta?mode=memory&cache=shared"

// DB wraps a SQLite database connection holding the stable response cache.
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Open creates or opens a SQLite database and applies migrations.
func Open(dsn string, logger *slog.Logger) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A shared-cache memory database disappears with its last connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{DB: sqlDB, logger: logger}

	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Info("cache database opened", "dsn", dsn)
	return db, nil
}
