// Package storage handles all database operations for the zone catalog.
package storage

import (
	"database/sql"
	"fmt"
)

// InitSchema creates all required tables and indexes.
// This is idempotent - safe to call multiple times.
func InitSchema(db *sql.DB) error {
	ddlStatements := []string{
		// zones table: the catalog itself
		`CREATE TABLE IF NOT EXISTS zones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			population INTEGER NOT NULL DEFAULT 0,
			pollution_index REAL NOT NULL DEFAULT 0,
			crime_rate REAL NOT NULL DEFAULT 0,
			ai_integration_level REAL NOT NULL DEFAULT 0,
			drone_traffic_density REAL NOT NULL DEFAULT 0,
			cyber_security_level REAL NOT NULL DEFAULT 0,
			smart_infra_score REAL NOT NULL DEFAULT 0,
			energy_source TEXT NOT NULL DEFAULT '',
			notable_tech TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Index on name for the list view
		`CREATE INDEX IF NOT EXISTS idx_zones_name ON zones(name)`,

		// admins table: administrator credentials
		`CREATE TABLE IF NOT EXISTS admins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range ddlStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	return nil
}

// MigrateSchema checks current schema version and applies migrations.
// Only v1 exists today; future versions will add migration logic here.
func MigrateSchema(db *sql.DB) error {
	return InitSchema(db)
}
