package domain

import "fmt"

// GeocodeFailedError reports a place name the geocoding provider could
// not resolve to coordinates.
type GeocodeFailedError struct {
	Place string
}

func (e *GeocodeFailedError) Error() string {
	return fmt.Sprintf("could not find location: %q", e.Place)
}

// RouteUnavailableError reports that the routing provider was unreachable
// or returned no route between the requested endpoints.
type RouteUnavailableError struct {
	Reason string
}

func (e *RouteUnavailableError) Error() string {
	return fmt.Sprintf("routing failed: %s", e.Reason)
}

// InsufficientGeometryError reports a route polyline too short to index.
type InsufficientGeometryError struct {
	Points int
}

func (e *InsufficientGeometryError) Error() string {
	return fmt.Sprintf("route geometry needs at least 2 points, got %d", e.Points)
}

// OutOfRangeError reports a distance query outside the route's extent.
type OutOfRangeError struct {
	DistanceMiles float64
	TotalMiles    float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf(
		"distance %.1f mi is outside route extent [0, %.1f]",
		e.DistanceMiles, e.TotalMiles,
	)
}

// NoReachableStationError reports that no fuel station exists near the
// required refueling point, even after widening the search radius.
// PositionMiles is where along the route the search failed.
type NoReachableStationError struct {
	PositionMiles  float64
	MaxRadiusMiles float64
}

func (e *NoReachableStationError) Error() string {
	return fmt.Sprintf(
		"no fuel station found near mile %.1f within %.0f mi; load more stations or try a different route",
		e.PositionMiles, e.MaxRadiusMiles,
	)
}
