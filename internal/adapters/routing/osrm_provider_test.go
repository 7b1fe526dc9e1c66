package routing

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/domain"
)

const osrmRouteBody = `{
	"code": "Ok",
	"routes": [{
		"distance": 1609340.0,
		"duration": 54000.0,
		"geometry": {"coordinates": [[-87.63, 41.88], [-88.00, 41.70], [-90.20, 40.80]]}
	}]
}`

func TestOSRMGetRoute(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		if got := r.URL.Query().Get("geometries"); got != "geojson" {
			t.Errorf("geometries = %q, want geojson", got)
		}
		if got := r.URL.Query().Get("overview"); got != "full" {
			t.Errorf("overview = %q, want full", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(osrmRouteBody))
	}))
	defer srv.Close()

	provider, err := NewOSRMRouteProviderWithBaseURL(srv.URL, cache.NewMemoryRouteCache(8, time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := domain.Coordinates{Lon: -87.63, Lat: 41.88}
	finish := domain.Coordinates{Lon: -90.20, Lat: 40.80}

	got, err := provider.GetRoute(context.Background(), start, finish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1,609,340 meters is 1000 miles; 54,000 seconds is 15 hours.
	if math.Abs(got.DistanceMiles-1000) > 0.01 {
		t.Fatalf("distance = %v, want ~1000", got.DistanceMiles)
	}
	if math.Abs(got.DurationHours-15) > 1e-9 {
		t.Fatalf("duration = %v, want 15", got.DurationHours)
	}
	if len(got.Geometry) != 3 {
		t.Fatalf("geometry has %d points, want 3", len(got.Geometry))
	}
	if got.Geometry[0] != start {
		t.Fatalf("geometry starts at %+v, want %+v", got.Geometry[0], start)
	}

	// Same pair again: served from cache, no second provider call.
	if _, err := provider.GetRoute(context.Background(), start, finish); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("provider called %d times, want 1", calls.Load())
	}
}

func TestOSRMGetRouteNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	provider, err := NewOSRMRouteProviderWithBaseURL(srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.GetRoute(context.Background(), domain.Coordinates{}, domain.Coordinates{Lon: 1, Lat: 1})

	var routeErr *domain.RouteUnavailableError
	if !errors.As(err, &routeErr) {
		t.Fatalf("expected RouteUnavailableError, got %v", err)
	}
}
