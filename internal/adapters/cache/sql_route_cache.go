package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

// SQLRouteCache is the Postgres-backed variant of the route cache.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch a cached route for the given coordinate-pair key.
func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

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
	WHERE route_key = $1;
	`

	var (
		miles, hours float64
		raw          []byte
	)
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&miles, &hours, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
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
func (s *SQLRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) error {
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
	INSERT INTO route_cache (route_key, distance_miles, duration_hours, geometry)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (route_key) DO UPDATE
	SET distance_miles = EXCLUDED.distance_miles,
		duration_hours = EXCLUDED.duration_hours,
		geometry = EXCLUDED.geometry;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, r.DistanceMiles, r.DurationHours, raw); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
