package services

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"fuel-route-service/internal/domain"
)

// meridianPath builds a route heading due north from the equator, sampled
// every stepDeg of latitude. One degree of latitude is ~69.1 miles, which
// makes route positions easy to reason about.
func meridianPath(maxLatDeg, stepDeg float64) []domain.Coordinates {
	path := make([]domain.Coordinates, 0, int(maxLatDeg/stepDeg)+1)
	for lat := 0.0; lat <= maxLatDeg+1e-9; lat += stepDeg {
		path = append(path, domain.Coordinates{Lon: 0, Lat: lat})
	}
	return path
}

func mustGeometry(t *testing.T, path []domain.Coordinates) *domain.RouteGeometry {
	t.Helper()
	geom, err := domain.NewRouteGeometry(path)
	if err != nil {
		t.Fatalf("build geometry: %v", err)
	}
	return geom
}

// sampleNear returns the route sample closest to the wanted mileage, so
// tests can pin stations exactly onto the polyline.
func sampleNear(t *testing.T, geom *domain.RouteGeometry, miles float64) domain.RoutePoint {
	t.Helper()
	points := geom.Points()
	best := points[0]
	for _, p := range points[1:] {
		if math.Abs(p.DistanceMiles-miles) < math.Abs(best.DistanceMiles-miles) {
			best = p
		}
	}
	return best
}

func stationAt(id string, p domain.RoutePoint, price float64) *domain.FuelStation {
	c := p.Coord
	return &domain.FuelStation{
		StationID:      id,
		Name:           "Station " + id,
		Coord:          &c,
		PricePerGallon: price,
	}
}

func TestPlanStopsShortRouteNeedsNoStops(t *testing.T) {
	geom := mustGeometry(t, meridianPath(5, 0.05)) // ~345 miles

	index := NewStationIndex([]*domain.FuelStation{
		stationAt("s1", sampleNear(t, geom, 200), 2.50),
	})

	stops, err := PlanStops(geom, index, DefaultPlannerConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 0 {
		t.Fatalf("expected 0 stops for a route within usable range, got %d", len(stops))
	}
}

func TestPlanStopsPicksCheapestNearSearchPoint(t *testing.T) {
	geom := mustGeometry(t, meridianPath(14.5, 0.05)) // ~1002 miles

	cheap := sampleNear(t, geom, 440)
	rich := sampleNear(t, geom, 445)
	mid := sampleNear(t, geom, 880)

	index := NewStationIndex([]*domain.FuelStation{
		stationAt("rich-445", rich, 3.10),
		stationAt("cheap-440", cheap, 2.90),
		stationAt("mid-880", mid, 3.00),
	})

	cfg := DefaultPlannerConfig()
	stops, err := PlanStops(geom, index, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(stops))
	}

	// Price wins over proximity to the search point.
	if stops[0].Station.StationID != "cheap-440" {
		t.Fatalf("first stop = %q, want cheap-440", stops[0].Station.StationID)
	}
	if stops[0].DistanceFromStartMiles != cheap.DistanceMiles {
		t.Fatalf("first stop at %v, want %v", stops[0].DistanceFromStartMiles, cheap.DistanceMiles)
	}
	if stops[1].Station.StationID != "mid-880" {
		t.Fatalf("second stop = %q, want mid-880", stops[1].Station.StationID)
	}

	for i, s := range stops {
		if s.StopNumber != i+1 {
			t.Fatalf("stop %d numbered %d", i, s.StopNumber)
		}
		if s.Gallons <= 0 || s.Gallons > cfg.Vehicle.TankCapacityGallons {
			t.Fatalf("stop %d gallons = %v outside (0, %v]", i, s.Gallons, cfg.Vehicle.TankCapacityGallons)
		}
		wantCost := s.Gallons * s.Station.PricePerGallon
		if math.Abs(s.Cost-wantCost) > 1e-9 {
			t.Fatalf("stop %d cost = %v, want %v", i, s.Cost, wantCost)
		}
	}

	if stops[1].DistanceFromStartMiles <= stops[0].DistanceFromStartMiles {
		t.Fatalf("stop distances not strictly increasing")
	}
	if stops[1].DistanceFromStartMiles > geom.TotalMiles() {
		t.Fatalf("last stop beyond route end")
	}

	// Fuel bought at each stop covers exactly the leg since the last fill.
	wantGallons := (stops[1].DistanceFromStartMiles - stops[0].DistanceFromStartMiles) / cfg.Vehicle.MilesPerGallon
	if math.Abs(stops[1].Gallons-wantGallons) > 1e-9 {
		t.Fatalf("second stop gallons = %v, want %v", stops[1].Gallons, wantGallons)
	}
}

func TestPlanStopsNoStationFails(t *testing.T) {
	geom := mustGeometry(t, meridianPath(14.5, 0.05))

	stops, err := PlanStops(geom, NewStationIndex(nil), DefaultPlannerConfig())
	if stops != nil {
		t.Fatalf("expected no partial result, got %d stops", len(stops))
	}

	var noStation *domain.NoReachableStationError
	if !errors.As(err, &noStation) {
		t.Fatalf("expected NoReachableStationError, got %v", err)
	}

	// The failure reports the end of the first safe-travel window.
	usable := DefaultPlannerConfig().Vehicle.UsableRangeMiles()
	if math.Abs(noStation.PositionMiles-usable) > 1e-9 {
		t.Fatalf("failure position = %v, want %v", noStation.PositionMiles, usable)
	}
	if noStation.MaxRadiusMiles != 250 {
		t.Fatalf("max radius = %v, want 250", noStation.MaxRadiusMiles)
	}
}

func TestPlanStopsRejectsStationBeyondSafeWindow(t *testing.T) {
	geom := mustGeometry(t, meridianPath(14.5, 0.05))

	// Near the search point but past the farthest safe mile; accepting it
	// would run the tank below the safety margin.
	beyond := sampleNear(t, geom, 470)
	index := NewStationIndex([]*domain.FuelStation{
		stationAt("beyond-470", beyond, 2.10),
	})

	_, err := PlanStops(geom, index, DefaultPlannerConfig())

	var noStation *domain.NoReachableStationError
	if !errors.As(err, &noStation) {
		t.Fatalf("expected NoReachableStationError, got %v", err)
	}
}

func TestPlanStopsCheapClusterBeyondWindowDoesNotStarveCandidates(t *testing.T) {
	geom := mustGeometry(t, meridianPath(14.5, 0.05)) // ~1002 miles

	// A large cluster of cheap stations just past the safe-travel window.
	// They sort ahead of every admissible station, so the planner must
	// keep scanning past all of them rather than give up or expand.
	stations := []*domain.FuelStation{
		stationAt("safe-440", sampleNear(t, geom, 440), 3.20),
		stationAt("mid-870", sampleNear(t, geom, 870), 3.00),
	}
	for i := 0; i < 30; i++ {
		id := fmt.Sprintf("cluster-%02d", i)
		stations = append(stations, stationAt(id, sampleNear(t, geom, 453+float64(i)*2), 2.50))
	}

	stops, err := PlanStops(geom, NewStationIndex(stations), DefaultPlannerConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(stops))
	}
	if stops[0].Station.StationID != "safe-440" {
		t.Fatalf("first stop = %q, want safe-440", stops[0].Station.StationID)
	}
}

func TestPlanStopsExpandsRadiusOnMiss(t *testing.T) {
	geom := mustGeometry(t, meridianPath(10, 0.05)) // ~691 miles

	// ~2 degrees (~138 mi) west of the mile-430 sample: outside the
	// initial 100 mi lookup, inside the 150 mi expansion.
	near := sampleNear(t, geom, 430)
	offRoute := *stationAt("off-route", near, 3.00)
	offRoute.Coord = &domain.Coordinates{Lon: near.Coord.Lon - 2.0, Lat: near.Coord.Lat}

	index := NewStationIndex([]*domain.FuelStation{&offRoute})

	stops, err := PlanStops(geom, index, DefaultPlannerConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 1 {
		t.Fatalf("expected 1 stop found via radius expansion, got %d", len(stops))
	}
	if stops[0].Station.StationID != "off-route" {
		t.Fatalf("stop = %q, want off-route", stops[0].Station.StationID)
	}
}
