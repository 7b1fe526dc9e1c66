package cache

import (
	"context"
	"log"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/metrics"
	"fuel-route-service/internal/ports"
)

// Layered caches check a hot in-memory layer first, then the persistent
// cold layer, promoting cold hits into the hot layer. Writes go to both.
// Cold-layer write failures are logged, not fatal: the cache is an
// optimization, never a source of truth.

type LayeredGeocodeCache struct {
	Hot  ports.GeocodeCache
	Cold ports.GeocodeCache
}

func NewLayeredGeocodeCache(hot, cold ports.GeocodeCache) *LayeredGeocodeCache {
	return &LayeredGeocodeCache{Hot: hot, Cold: cold}
}

func (l *LayeredGeocodeCache) Get(ctx context.Context, place string) (domain.Coordinates, bool, error) {
	if c, ok, err := l.Hot.Get(ctx, place); err == nil && ok {
		metrics.CacheHits.WithLabelValues("geocode", "memory").Inc()
		return c, true, nil
	}
	metrics.CacheMisses.WithLabelValues("geocode", "memory").Inc()

	c, ok, err := l.Cold.Get(ctx, place)
	if err != nil {
		return domain.Coordinates{}, false, err
	}
	if !ok {
		metrics.CacheMisses.WithLabelValues("geocode", "persistent").Inc()
		return domain.Coordinates{}, false, nil
	}
	metrics.CacheHits.WithLabelValues("geocode", "persistent").Inc()

	if err := l.Hot.Put(ctx, place, c); err != nil {
		log.Printf("geocode hot cache promote failed: %v", err)
	}

	return c, true, nil
}

func (l *LayeredGeocodeCache) Put(ctx context.Context, place string, c domain.Coordinates) error {
	if err := l.Hot.Put(ctx, place, c); err != nil {
		log.Printf("geocode hot cache write failed: %v", err)
	}
	return l.Cold.Put(ctx, place, c)
}

type LayeredRouteCache struct {
	Hot  ports.RouteCache
	Cold ports.RouteCache
}

func NewLayeredRouteCache(hot, cold ports.RouteCache) *LayeredRouteCache {
	return &LayeredRouteCache{Hot: hot, Cold: cold}
}

func (l *LayeredRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	if r, ok, err := l.Hot.Get(ctx, key); err == nil && ok {
		metrics.CacheHits.WithLabelValues("route", "memory").Inc()
		return r, true, nil
	}
	metrics.CacheMisses.WithLabelValues("route", "memory").Inc()

	r, ok, err := l.Cold.Get(ctx, key)
	if err != nil {
		return ports.RouteResult{}, false, err
	}
	if !ok {
		metrics.CacheMisses.WithLabelValues("route", "persistent").Inc()
		return ports.RouteResult{}, false, nil
	}
	metrics.CacheHits.WithLabelValues("route", "persistent").Inc()

	if err := l.Hot.Put(ctx, key, r); err != nil {
		log.Printf("route hot cache promote failed: %v", err)
	}

	return r, true, nil
}

func (l *LayeredRouteCache) Put(ctx context.Context, key string, r ports.RouteResult) error {
	if err := l.Hot.Put(ctx, key, r); err != nil {
		log.Printf("route hot cache write failed: %v", err)
	}
	return l.Cold.Put(ctx, key, r)
}
