package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fuel-route-service/internal/domain"
)

// SQLite backed cache mapping place names to geographic coordinates.
// Place keys are expected to be consistent (e.g., normalized) by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given place name.
func (s *SqliteGeocodeCache) Get(ctx context.Context, place string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	place = strings.TrimSpace(place)
	if place == "" {
		return domain.Coordinates{}, false, errors.New("get geocode cache: place must not be empty")
	}

	q := `
	SELECT lon, lat
	FROM geocode_cache
	WHERE place = ?;
	`

	var lon, lat float64
	err := s.DB.QueryRowContext(ctx, q, place).Scan(&lon, &lat)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, true, nil
}

// Store a place -> coordinate mapping in the cache.
func (s *SqliteGeocodeCache) Put(ctx context.Context, place string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	place = strings.TrimSpace(place)
	if place == "" {
		return errors.New("insert geocode cache: place must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
		place,
		lon,
		lat
	)
	VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, place, c.Lon, c.Lat); err != nil {
		return fmt.Errorf("insert geocode cache place=%q: %w", place, err)
	}

	return nil
}
