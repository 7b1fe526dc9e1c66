package domain

import "sort"

// A single sample of the route polyline, indexed by the cumulative
// road distance from the route start.
type RoutePoint struct {
	Coord         Coordinates
	DistanceMiles float64
}

// RouteGeometry is an ordered, distance-indexed view of a route polyline.
// Cumulative distances are strictly increasing, starting at 0 and ending
// at the total route distance. Immutable once constructed; each planning
// call owns its own instance.
type RouteGeometry struct {
	points     []RoutePoint
	totalMiles float64
}

// NewRouteGeometry builds a distance index over a raw routing-provider
// polyline. The path is assumed to already follow the road network, so
// cumulative distance is the haversine sum over consecutive points.
// Duplicate consecutive points are collapsed to keep distances strictly
// increasing.
func NewRouteGeometry(path []Coordinates) (*RouteGeometry, error) {
	if len(path) < 2 {
		return nil, &InsufficientGeometryError{Points: len(path)}
	}

	points := make([]RoutePoint, 0, len(path))
	points = append(points, RoutePoint{Coord: path[0], DistanceMiles: 0})

	cumulative := 0.0
	for i := 1; i < len(path); i++ {
		segment := HaversineMiles(path[i-1], path[i])
		if segment == 0 {
			continue
		}
		cumulative += segment
		points = append(points, RoutePoint{Coord: path[i], DistanceMiles: cumulative})
	}

	if len(points) < 2 {
		return nil, &InsufficientGeometryError{Points: len(points)}
	}

	return &RouteGeometry{points: points, totalMiles: cumulative}, nil
}

// TotalMiles is the cumulative road distance over the whole polyline.
func (g *RouteGeometry) TotalMiles() float64 { return g.totalMiles }

// Points returns a copy of the distance-indexed samples.
func (g *RouteGeometry) Points() []RoutePoint {
	out := make([]RoutePoint, len(g.points))
	copy(out, g.points)
	return out
}

// PointAt returns the coordinate at the given cumulative distance from the
// route start, linearly interpolated between the enclosing samples.
func (g *RouteGeometry) PointAt(miles float64) (Coordinates, error) {
	if miles < 0 || miles > g.totalMiles {
		return Coordinates{}, &OutOfRangeError{DistanceMiles: miles, TotalMiles: g.totalMiles}
	}

	// First sample at or beyond the requested distance.
	i := sort.Search(len(g.points), func(i int) bool {
		return g.points[i].DistanceMiles >= miles
	})

	if i == 0 {
		return g.points[0].Coord, nil
	}

	prev, next := g.points[i-1], g.points[i]
	span := next.DistanceMiles - prev.DistanceMiles
	t := (miles - prev.DistanceMiles) / span

	return Coordinates{
		Lon: prev.Coord.Lon + t*(next.Coord.Lon-prev.Coord.Lon),
		Lat: prev.Coord.Lat + t*(next.Coord.Lat-prev.Coord.Lat),
	}, nil
}

// DistanceAlong locates a nearby point on the route and returns the
// cumulative distance of the closest polyline sample. Used to place an
// off-route fuel station at a position along the route.
func (g *RouteGeometry) DistanceAlong(c Coordinates) float64 {
	best := g.points[0]
	bestDist := HaversineMiles(c, best.Coord)

	for _, p := range g.points[1:] {
		if d := HaversineMiles(c, p.Coord); d < bestDist {
			bestDist = d
			best = p
		}
	}

	return best.DistanceMiles
}
