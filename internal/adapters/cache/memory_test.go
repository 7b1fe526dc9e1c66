package cache

import (
	"context"
	"testing"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

func TestMemoryGeocodeCache(t *testing.T) {
	c := NewMemoryGeocodeCache(8, time.Minute)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "Chicago, IL"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	want := domain.Coordinates{Lon: -87.63, Lat: 41.88}
	if err := c.Put(ctx, "Chicago, IL", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, "Chicago, IL")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMemoryGeocodeCacheExpiry(t *testing.T) {
	c := NewMemoryGeocodeCache(8, 10*time.Millisecond)
	ctx := context.Background()

	if err := c.Put(ctx, "k", domain.Coordinates{Lat: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestMemoryRouteCache(t *testing.T) {
	c := NewMemoryRouteCache(8, time.Minute)
	ctx := context.Background()

	key := ports.RouteKey(domain.Coordinates{Lon: 1, Lat: 2}, domain.Coordinates{Lon: 3, Lat: 4})
	want := ports.RouteResult{
		Geometry:      []domain.Coordinates{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}},
		DistanceMiles: 12.5,
		DurationHours: 0.3,
	}

	if err := c.Put(ctx, key, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.DistanceMiles != want.DistanceMiles || len(got.Geometry) != 2 {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLayeredGeocodeCachePromotesColdHits(t *testing.T) {
	hot := NewMemoryGeocodeCache(8, time.Minute)
	cold := NewMemoryGeocodeCache(8, time.Minute)
	layered := NewLayeredGeocodeCache(hot, cold)
	ctx := context.Background()

	want := domain.Coordinates{Lon: -95.4, Lat: 29.7}
	if err := cold.Put(ctx, "Houston, TX", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := layered.Get(ctx, "Houston, TX")
	if err != nil || !ok || got != want {
		t.Fatalf("expected cold hit, got %+v ok=%v err=%v", got, ok, err)
	}

	// Promoted: now present in the hot layer directly.
	if _, ok, _ := hot.Get(ctx, "Houston, TX"); !ok {
		t.Fatalf("expected promotion into hot layer")
	}
}

func TestLayeredGeocodeCachePutWritesBothLayers(t *testing.T) {
	hot := NewMemoryGeocodeCache(8, time.Minute)
	cold := NewMemoryGeocodeCache(8, time.Minute)
	layered := NewLayeredGeocodeCache(hot, cold)
	ctx := context.Background()

	want := domain.Coordinates{Lon: 1, Lat: 1}
	if err := layered.Put(ctx, "k", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, _ := hot.Get(ctx, "k"); !ok {
		t.Fatalf("expected write in hot layer")
	}
	if _, ok, _ := cold.Get(ctx, "k"); !ok {
		t.Fatalf("expected write in cold layer")
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	geometry := []domain.Coordinates{{Lon: -87.6, Lat: 41.9}, {Lon: -88.1, Lat: 41.5}}

	raw, err := encodeGeometry(geometry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := decodeGeometry(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != len(geometry) {
		t.Fatalf("got %d points, want %d", len(got), len(geometry))
	}
	for i := range got {
		if got[i] != geometry[i] {
			t.Fatalf("point %d = %+v, want %+v", i, got[i], geometry[i])
		}
	}
}
