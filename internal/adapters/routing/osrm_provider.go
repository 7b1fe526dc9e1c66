package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/metrics"
	"fuel-route-service/internal/ports"
)

const (
	metersPerMile = 1609.34
	milesPerMeter = 0.000621371
)

// OSRMRouteProvider implements RouteProvider using the public OSRM
// routing service.
//
// It coordinates:
//   - Route caching keyed by coordinate pair
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	profile string
	cache   ports.RouteCache
}

func NewOSRMRouteProvider(cache ports.RouteCache) *OSRMRouteProvider {
	return &OSRMRouteProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: "http://router.project-osrm.org",
		profile: "driving",
		cache:   cache,
	}
}

// NewOSRMRouteProviderWithBaseURL targets a self-hosted or test OSRM instance.
func NewOSRMRouteProviderWithBaseURL(baseURL string, cache ports.RouteCache) (*OSRMRouteProvider, error) {
	if baseURL == "" {
		return nil, errors.New("OSRM base URL is empty")
	}
	p := NewOSRMRouteProvider(cache)
	p.baseURL = baseURL
	return p, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		DistanceMeters  float64 `json:"distance"`
		DurationSeconds float64 `json:"duration"`
		Geometry        struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// GetRoute returns the driving route between two coordinates, consulting
// the route cache before calling OSRM.
func (o *OSRMRouteProvider) GetRoute(
	ctx context.Context,
	start domain.Coordinates,
	finish domain.Coordinates,
) (ports.RouteResult, error) {
	key := ports.RouteKey(start, finish)

	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			return ports.RouteResult{}, fmt.Errorf("OSRM get route cache: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	result, err := o.fetchRoute(ctx, start, finish)
	if err != nil {
		return ports.RouteResult{}, err
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, result); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return result, nil
}

func (o *OSRMRouteProvider) fetchRoute(
	ctx context.Context,
	start domain.Coordinates,
	finish domain.Coordinates,
) (ports.RouteResult, error) {
	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f",
		o.baseURL, o.profile,
		start.Lon, start.Lat, finish.Lon, finish.Lat,
	)

	resp, err := doWithRetry(ctx, o.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create route request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("overview", "full")
		q.Set("geometries", "geojson")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		metrics.ExternalCalls.WithLabelValues("osrm", "error").Inc()
		return ports.RouteResult{}, &domain.RouteUnavailableError{Reason: err.Error()}
	}
	defer resp.Body.Close()
	metrics.ExternalCalls.WithLabelValues("osrm", "ok").Inc()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return ports.RouteResult{}, &domain.RouteUnavailableError{
			Reason: fmt.Sprintf("provider returned code %q with %d routes", decoded.Code, len(decoded.Routes)),
		}
	}

	route := decoded.Routes[0]

	geometry := make([]domain.Coordinates, 0, len(route.Geometry.Coordinates))
	for _, pair := range route.Geometry.Coordinates {
		if len(pair) != 2 {
			return ports.RouteResult{}, fmt.Errorf("invalid geometry pair of length %d", len(pair))
		}
		geometry = append(geometry, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}

	return ports.RouteResult{
		Geometry:      geometry,
		DistanceMiles: route.DistanceMeters * milesPerMeter,
		DurationHours: route.DurationSeconds / 3600,
	}, nil
}
