package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// In-process expirable LRU caches. These front the persistent caches so
// repeated lookups within a process never touch the database, and entries
// age out instead of requiring manual clears.
//
// TTLs mirror the providers' data volatility: geocoded coordinates are
// stable (24h), fuel-relevant routes less so (1h).
const (
	DefaultGeocodeTTL = 24 * time.Hour
	DefaultRouteTTL   = time.Hour
)

type MemoryGeocodeCache struct {
	lru *expirable.LRU[string, domain.Coordinates]
}

func NewMemoryGeocodeCache(size int, ttl time.Duration) *MemoryGeocodeCache {
	if size <= 0 {
		size = 4096
	}
	return &MemoryGeocodeCache{lru: expirable.NewLRU[string, domain.Coordinates](size, nil, ttl)}
}

func (m *MemoryGeocodeCache) Get(ctx context.Context, place string) (domain.Coordinates, bool, error) {
	c, ok := m.lru.Get(place)
	return c, ok, nil
}

func (m *MemoryGeocodeCache) Put(ctx context.Context, place string, c domain.Coordinates) error {
	m.lru.Add(place, c)
	return nil
}

type MemoryRouteCache struct {
	lru *expirable.LRU[string, ports.RouteResult]
}

func NewMemoryRouteCache(size int, ttl time.Duration) *MemoryRouteCache {
	if size <= 0 {
		size = 1024
	}
	return &MemoryRouteCache{lru: expirable.NewLRU[string, ports.RouteResult](size, nil, ttl)}
}

func (m *MemoryRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	r, ok := m.lru.Get(key)
	return r, ok, nil
}

func (m *MemoryRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) error {
	m.lru.Add(key, r)
	return nil
}
