package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS stations (
		station_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip_code TEXT NOT NULL,
		latitude REAL,
		longitude REAL,
		price_per_gallon REAL NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		place TEXT PRIMARY KEY,
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		route_key TEXT PRIMARY KEY,
		distance_miles REAL NOT NULL,
		duration_hours REAL NOT NULL,
		geometry TEXT NOT NULL
	);
	`

	createLocationIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stations_latitude_longitude
	ON stations(latitude, longitude);
	`

	createPriceIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stations_price_per_gallon
	ON stations(price_per_gallon);
	`

	statements := []string{
		createStationsQuery,
		createGeocodeCacheQuery,
		createRouteCacheQuery,
		createLocationIndexQuery,
		createPriceIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
