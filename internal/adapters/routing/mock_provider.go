package routing

import (
	"context"
	"fmt"
	"sync/atomic"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// MockGeocoder resolves place names from a fixed table and counts calls.
// The counter is atomic because the trip planner geocodes concurrently.
type MockGeocoder struct {
	Places map[string]domain.Coordinates
	Calls  atomic.Int64
}

func NewMockGeocoder(places map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{Places: places}
}

func (m *MockGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	m.Calls.Add(1)
	c, ok := m.Places[place]
	if !ok {
		return domain.Coordinates{}, &domain.GeocodeFailedError{Place: place}
	}
	return c, nil
}

// MockRouteProvider returns a fixed route for every pair and counts calls.
type MockRouteProvider struct {
	Result ports.RouteResult
	Err    error
	Calls  atomic.Int64
}

func NewMockRouteProvider(result ports.RouteResult) *MockRouteProvider {
	return &MockRouteProvider{Result: result}
}

func (m *MockRouteProvider) GetRoute(ctx context.Context, start, finish domain.Coordinates) (ports.RouteResult, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return ports.RouteResult{}, fmt.Errorf("mock route %v -> %v: %w", start, finish, m.Err)
	}
	return m.Result, nil
}
