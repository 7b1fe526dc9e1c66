package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

// TripPlanner orchestrates one planning request: two geocodes, one route
// lookup, then the synchronous greedy stop selection. The station index is
// shared read-only across requests; providers handle their own caching.
type TripPlanner struct {
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Index    *StationIndex
	Config   PlannerConfig
}

func NewTripPlanner(
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	index *StationIndex,
	cfg PlannerConfig,
) *TripPlanner {
	return &TripPlanner{
		Geocoder: geocoder,
		Routes:   routes,
		Index:    index,
		Config:   cfg,
	}
}

// normalize ensures consistent provider and cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type geocodeResult struct {
	coord domain.Coordinates
	err   error
}

// Plan computes the refueling plan for a trip between two place names.
// Planning is all-or-nothing: any failure returns no partial result.
func (p *TripPlanner) Plan(ctx context.Context, start, finish string) (_ *domain.PlanResult, err error) {
	defer obs.Time(ctx, "trip.Plan")(&err)

	start = normalize(start)
	finish = normalize(finish)

	if start == "" || finish == "" {
		return nil, fmt.Errorf("plan trip: start and finish must be non-empty")
	}

	// The two geocodes are independent; issue them concurrently.
	// Identical names share one lookup so the provider is never asked
	// the same question twice within a request.
	results := make([]geocodeResult, 2)
	if start == finish {
		c, e := p.Geocoder.Geocode(ctx, start)
		results[0] = geocodeResult{coord: c, err: e}
		results[1] = results[0]
	} else {
		var wg sync.WaitGroup
		for i, place := range []string{start, finish} {
			wg.Add(1)
			go func(i int, place string) {
				defer wg.Done()
				c, e := p.Geocoder.Geocode(ctx, place)
				results[i] = geocodeResult{coord: c, err: e}
			}(i, place)
		}
		wg.Wait()
	}

	for i, place := range []string{start, finish} {
		if results[i].err != nil {
			return nil, fmt.Errorf("plan trip: geocode %q: %w", place, results[i].err)
		}
	}
	startCoord, finishCoord := results[0].coord, results[1].coord

	route, err := p.Routes.GetRoute(ctx, startCoord, finishCoord)
	if err != nil {
		return nil, fmt.Errorf("plan trip: get route: %w", err)
	}

	geom, err := domain.NewRouteGeometry(route.Geometry)
	if err != nil {
		return nil, fmt.Errorf("plan trip: index route geometry: %w", err)
	}

	stops, err := PlanStops(geom, p.Index, p.Config)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	totalGallons := 0.0
	totalCost := 0.0
	for _, s := range stops {
		totalGallons += s.Gallons
		totalCost += s.Cost
	}

	return &domain.PlanResult{
		StartLocation:      start,
		FinishLocation:     finish,
		TotalDistanceMiles: route.DistanceMiles,
		TotalDurationHours: route.DurationHours,
		TotalFuelGallons:   totalGallons,
		TotalFuelCost:      totalCost,
		Stops:              stops,
		Geometry:           route.Geometry,
	}, nil
}
