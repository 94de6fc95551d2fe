package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// startupPragmas are applied to every new connection pool. Foreign keys are
// off by default in SQLite and the schema relies on them.
var startupPragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA timezone = 'UTC'",
}

// Open opens the SQLite database at dbPath and verifies the connection.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, pragma := range startupPragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return db, nil
}

// HealthCheck reports whether the database is still reachable.
func HealthCheck(db *sql.DB) error {
	return db.Ping()
}
