package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/metrics"
	"fuel-route-service/internal/ports"
)

// NominatimGeocoder implements Geocoder against the OSM Nominatim search
// endpoint, restricted to US results. Lookups consult the geocode cache
// before issuing an external call. Safe for concurrent use.
type NominatimGeocoder struct {
	session *http.Client
	baseURL string
	cache   ports.GeocodeCache
}

func NewNominatimGeocoder(cache ports.GeocodeCache) *NominatimGeocoder {
	return &NominatimGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://nominatim.openstreetmap.org",
		cache:   cache,
	}
}

// NewNominatimGeocoderWithBaseURL targets a self-hosted or test instance.
func NewNominatimGeocoderWithBaseURL(baseURL string, cache ports.GeocodeCache) (*NominatimGeocoder, error) {
	if baseURL == "" {
		return nil, errors.New("nominatim base URL is empty")
	}
	g := NewNominatimGeocoder(cache)
	g.baseURL = baseURL
	return g, nil
}

// Nominatim returns numeric fields as JSON strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a place name to its best-match coordinates.
func (g *NominatimGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	place = strings.Join(strings.Fields(place), " ")
	if place == "" {
		return domain.Coordinates{}, errors.New("geocode: place must be non-empty")
	}

	if g.cache != nil {
		cached, ok, err := g.cache.Get(ctx, place)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode cache get: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	coord, err := g.fetch(ctx, place)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, place, coord); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coord, nil
}

func (g *NominatimGeocoder) fetch(ctx context.Context, place string) (domain.Coordinates, error) {
	endpoint := g.baseURL + "/search"

	resp, err := doWithRetry(ctx, g.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create geocode request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("q", place)
		q.Set("format", "json")
		q.Set("limit", "1")
		q.Set("countrycodes", "us")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		metrics.ExternalCalls.WithLabelValues("nominatim", "error").Inc()
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	defer resp.Body.Close()
	metrics.ExternalCalls.WithLabelValues("nominatim", "ok").Inc()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, &domain.GeocodeFailedError{Place: place}
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse geocode latitude %q: %w", decoded[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse geocode longitude %q: %w", decoded[0].Lon, err)
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, nil
}
