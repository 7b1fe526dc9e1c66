package domain

import (
	"errors"
	"math"
	"testing"
)

func TestRouteGeometryTotalMiles(t *testing.T) {
	path := []Coordinates{
		{Lon: -87.63, Lat: 41.88},
		{Lon: -88.00, Lat: 41.70},
		{Lon: -89.10, Lat: 41.20},
		{Lon: -90.20, Lat: 40.80},
	}

	geom, err := NewRouteGeometry(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 0.0
	for i := 1; i < len(path); i++ {
		want += HaversineMiles(path[i-1], path[i])
	}

	if math.Abs(geom.TotalMiles()-want) > 1e-9 {
		t.Fatalf("total miles = %v, want %v", geom.TotalMiles(), want)
	}

	points := geom.Points()
	if len(points) != len(path) {
		t.Fatalf("expected %d samples, got %d", len(path), len(points))
	}
	if points[0].DistanceMiles != 0 {
		t.Fatalf("first sample distance = %v, want 0", points[0].DistanceMiles)
	}
	for i := 1; i < len(points); i++ {
		if points[i].DistanceMiles <= points[i-1].DistanceMiles {
			t.Fatalf("cumulative distances not strictly increasing at %d", i)
		}
	}
	if points[len(points)-1].DistanceMiles != geom.TotalMiles() {
		t.Fatalf("last sample distance %v != total %v", points[len(points)-1].DistanceMiles, geom.TotalMiles())
	}
}

func TestRouteGeometryTooFewPoints(t *testing.T) {
	_, err := NewRouteGeometry([]Coordinates{{Lon: 0, Lat: 0}})

	var geomErr *InsufficientGeometryError
	if !errors.As(err, &geomErr) {
		t.Fatalf("expected InsufficientGeometryError, got %v", err)
	}
	if geomErr.Points != 1 {
		t.Fatalf("reported points = %d, want 1", geomErr.Points)
	}
}

func TestRouteGeometryCollapsesDuplicatePoints(t *testing.T) {
	path := []Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 1},
	}

	geom, err := NewRouteGeometry(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(geom.Points()); got != 2 {
		t.Fatalf("expected duplicate collapsed to 2 samples, got %d", got)
	}
}

func TestRouteGeometryPointAt(t *testing.T) {
	path := []Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 1},
		{Lon: 0, Lat: 2},
	}

	geom, err := NewRouteGeometry(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Halfway into the first segment along a meridian.
	segment := HaversineMiles(path[0], path[1])
	got, err := geom.PointAt(segment / 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got.Lat-0.5) > 1e-9 || math.Abs(got.Lon) > 1e-9 {
		t.Fatalf("interpolated point = %+v, want (lat 0.5, lon 0)", got)
	}

	start, err := geom.PointAt(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != path[0] {
		t.Fatalf("point at 0 = %+v, want %+v", start, path[0])
	}

	end, err := geom.PointAt(geom.TotalMiles())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end != path[2] {
		t.Fatalf("point at total = %+v, want %+v", end, path[2])
	}
}

func TestRouteGeometryPointAtOutOfRange(t *testing.T) {
	geom, err := NewRouteGeometry([]Coordinates{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, miles := range []float64{-1, geom.TotalMiles() + 1} {
		_, err := geom.PointAt(miles)
		var rangeErr *OutOfRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("PointAt(%v): expected OutOfRangeError, got %v", miles, err)
		}
	}
}

func TestRouteGeometryDistanceAlong(t *testing.T) {
	path := []Coordinates{
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 1},
		{Lon: 0, Lat: 2},
	}

	geom, err := NewRouteGeometry(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A point just off the middle sample maps to its cumulative distance.
	offRoute := Coordinates{Lon: 0.01, Lat: 1.001}
	want := geom.Points()[1].DistanceMiles
	if got := geom.DistanceAlong(offRoute); got != want {
		t.Fatalf("distance along = %v, want %v", got, want)
	}
}
