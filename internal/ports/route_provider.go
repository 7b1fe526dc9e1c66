package ports

import (
	"context"
	"fmt"

	"fuel-route-service/internal/domain"
)

// A road route between two coordinates as returned by a routing provider.
// Geometry is the full polyline following the road network.
type RouteResult struct {
	Geometry      []domain.Coordinates
	DistanceMiles float64
	DurationHours float64
}

// Contract for retrieving a driving route between two coordinates.
type RouteProvider interface {
	// Return the road polyline, distance and duration between two points.
	GetRoute(ctx context.Context, start, finish domain.Coordinates) (RouteResult, error)
}

// RouteKey builds a stable cache key for a start/finish coordinate pair.
// Coordinates are truncated to 5 decimal places (~1 m) so that repeated
// geocodes of the same place map to the same key.
func RouteKey(start, finish domain.Coordinates) string {
	return fmt.Sprintf(
		"%.5f,%.5f|%.5f,%.5f",
		start.Lon, start.Lat, finish.Lon, finish.Lat,
	)
}
