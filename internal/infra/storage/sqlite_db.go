package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite initializes the local SQLite database and creates the
// schemas for the sensor history and the alert log.
func InitSQLite(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS sensor_logs (
			id TEXT PRIMARY KEY,
			farm_id TEXT NOT NULL,
			temperature REAL NOT NULL,
			humidity REAL NOT NULL,
			pressure REAL NOT NULL,
			soil_moisture REAL NOT NULL,
			rainfall REAL NOT NULL,
			wind_speed REAL NOT NULL,
			is_raining BOOLEAN NOT NULL DEFAULT 0,
			simulation_tick INTEGER NOT NULL,
			timestamp DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS alert_log (
			id TEXT PRIMARY KEY,
			farm_id TEXT NOT NULL,
			alert_type TEXT NOT NULL,
			severity TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			threshold_value REAL NOT NULL,
			actual_value REAL NOT NULL,
			simulation_tick INTEGER NOT NULL,
			timestamp DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_logs_farm_id ON sensor_logs(farm_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_logs_timestamp ON sensor_logs(timestamp);`,
		`CREATE INDEX IF NOT EXISTS idx_alert_log_farm_id ON alert_log(farm_id);`,
		`CREATE INDEX IF NOT EXISTS idx_alert_log_type ON alert_log(alert_type);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
