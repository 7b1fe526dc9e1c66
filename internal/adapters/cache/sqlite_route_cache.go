package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// SQLite backed cache for routing-provider results, keyed by
// ports.RouteKey. The polyline is stored as a JSON array of [lon, lat]
// pairs alongside the scalar metrics.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

func encodeGeometry(geometry []domain.Coordinates) ([]byte, error) {
	pairs := make([][2]float64, 0, len(geometry))
	for _, c := range geometry {
		pairs = append(pairs, [2]float64{c.Lon, c.Lat})
	}
	return json.Marshal(pairs)
}

func decodeGeometry(raw []byte) ([]domain.Coordinates, error) {
	var pairs [][2]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, err
	}

	out := make([]domain.Coordinates, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.Coordinates{Lon: p[0], Lat: p[1]})
	}
	return out, nil
}

// Fetch a cached route for the given coordinate-pair key.
func (s *SqliteRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT distance_miles, duration_hours, geometry
	FROM route_cache
	WHERE route_key = ?;
	`

	var (
		miles, hours float64
		raw          []byte
	)
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&miles, &hours, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	geometry, err := decodeGeometry(raw)
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: decode geometry: %w", err)
	}

	return ports.RouteResult{
		Geometry:      geometry,
		DistanceMiles: miles,
		DurationHours: hours,
	}, true, nil
}

// Store a routing-provider result for the given key.
func (s *SqliteRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	raw, err := encodeGeometry(r.Geometry)
	if err != nil {
		return fmt.Errorf("insert route cache: encode geometry: %w", err)
	}

	q := `
	INSERT OR REPLACE INTO route_cache (
		route_key,
		distance_miles,
		duration_hours,
		geometry
	)
	VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, r.DistanceMiles, r.DurationHours, raw); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
