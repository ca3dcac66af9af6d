// Package db opens the service-request database.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens an existing SQLite database read-only. A missing file is the
// fatal store-unreachable condition: no reports can run, so the caller
// aborts before any report executes.
func Open(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			abs, absErr := filepath.Abs(path)
			if absErr != nil {
				abs = path
			}
			return nil, fmt.Errorf("database not found at %s (set --db or %s to the full path of your database file)", abs, "SRVIZ_DB")
		}
		return nil, fmt.Errorf("failed to stat database file: %w", err)
	}

	database, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return database, nil
}
