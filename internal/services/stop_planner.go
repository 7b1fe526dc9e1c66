package services

import (
	"fmt"

	"fuel-route-service/internal/domain"
)

// Tuning for the greedy stop selection loop.
// The lookup radius tolerates stations slightly off the exact route line;
// the expansion radii are tried in order when the initial search is empty.
type PlannerConfig struct {
	Vehicle             domain.VehicleProfile
	LookupRadiusMiles   float64
	ExpansionRadiiMiles []float64
}

func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		Vehicle:             domain.DefaultVehicleProfile(),
		LookupRadiusMiles:   100,
		ExpansionRadiiMiles: []float64{150, 200, 250},
	}
}

// PlanStops selects refueling stops along the route using a single-pass
// greedy algorithm.
//
// At each step the vehicle travels to the end of its safe-travel window
// and the cheapest station near that point is chosen; price dominates
// distance once a station is within the window. The tank is always
// refilled to full. This is a deliberate approximation of shortest-cost
// planning that trades fuel-cost optimality for fewer stops and
// deterministic behavior.
func PlanStops(geom *domain.RouteGeometry, index *StationIndex, cfg PlannerConfig) ([]domain.FuelStop, error) {
	if geom == nil {
		return nil, fmt.Errorf("plan stops: route geometry must be non-nil")
	}
	if index == nil {
		return nil, fmt.Errorf("plan stops: station index must be non-nil")
	}
	if err := cfg.Vehicle.Validate(); err != nil {
		return nil, fmt.Errorf("plan stops: %w", err)
	}

	total := geom.TotalMiles()
	usable := cfg.Vehicle.UsableRangeMiles()

	position := 0.0
	stops := make([]domain.FuelStop, 0, int(total/usable)+1)

	for {
		reachable := position + usable
		if reachable >= total {
			// Destination reachable on the current tank.
			return stops, nil
		}

		searchPoint, err := geom.PointAt(reachable)
		if err != nil {
			return nil, fmt.Errorf("plan stops: locate search point: %w", err)
		}

		candidate, found := findCandidate(geom, index, cfg, searchPoint, position, reachable)
		if !found {
			maxRadius := cfg.LookupRadiusMiles
			if n := len(cfg.ExpansionRadiiMiles); n > 0 {
				maxRadius = cfg.ExpansionRadiiMiles[n-1]
			}
			return nil, &domain.NoReachableStationError{
				PositionMiles:  reachable,
				MaxRadiusMiles: maxRadius,
			}
		}

		// Fuel burned since the last refill; buying it back refills to full.
		gallons := (candidate.routeMiles - position) / cfg.Vehicle.MilesPerGallon
		stops = append(stops, domain.FuelStop{
			StopNumber:             len(stops) + 1,
			Station:                candidate.station,
			DistanceFromStartMiles: candidate.routeMiles,
			Gallons:                gallons,
			Cost:                   gallons * candidate.station.PricePerGallon,
		})

		position = candidate.routeMiles
	}
}

type plannedCandidate struct {
	station    *domain.FuelStation
	routeMiles float64
}

// findCandidate picks the cheapest admissible station near the search
// point, widening the radius on each miss. A station is admissible only
// when its position along the route lies strictly beyond the current
// position (guarantees loop progress) and within the safe-travel window.
func findCandidate(
	geom *domain.RouteGeometry,
	index *StationIndex,
	cfg PlannerConfig,
	searchPoint domain.Coordinates,
	position float64,
	reachable float64,
) (plannedCandidate, bool) {
	radii := make([]float64, 0, 1+len(cfg.ExpansionRadiiMiles))
	radii = append(radii, cfg.LookupRadiusMiles)
	radii = append(radii, cfg.ExpansionRadiiMiles...)

	for _, radius := range radii {
		// Admissibility must be checked on the full radius result:
		// truncating the price-sorted list first could drop every
		// admissible station behind a cluster of cheap inadmissible ones.
		for _, cand := range index.FindNear(searchPoint, radius, 0) {
			routeMiles := geom.DistanceAlong(*cand.Station.Coord)
			if routeMiles <= position || routeMiles > reachable {
				continue
			}
			// Candidates arrive price-sorted; the first admissible one wins.
			return plannedCandidate{station: cand.Station, routeMiles: routeMiles}, true
		}
	}

	return plannedCandidate{}, false
}
