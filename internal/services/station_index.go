package services

import (
	"math"
	"slices"

	"fuel-route-service/internal/domain"
)

// Miles spanned by one degree of latitude (and of longitude at the equator).
const degreeMiles = 69.0

// A station candidate returned by a radius query, with its exact
// great-circle distance from the query point.
type StationCandidate struct {
	Station       *domain.FuelStation
	DistanceMiles float64
}

// StationIndex answers "which stations lie within R miles of P" over the
// in-memory station catalogue. Built once at startup from the repository
// and shared read-only across planning requests.
type StationIndex struct {
	stations []*domain.FuelStation
}

// NewStationIndex builds the index, dropping stations without coordinates.
func NewStationIndex(stations []*domain.FuelStation) *StationIndex {
	located := make([]*domain.FuelStation, 0, len(stations))
	for _, s := range stations {
		if s == nil || s.Coord == nil {
			continue
		}
		located = append(located, s)
	}

	return &StationIndex{stations: located}
}

// Size is the number of spatially queryable stations.
func (ix *StationIndex) Size() int { return len(ix.stations) }

// FindNear returns stations with exact haversine distance <= radiusMiles
// from p, sorted by price ascending, then distance ascending, then station
// id, so repeated identical queries are deterministic. A limit <= 0 means
// no limit. An empty result is not an error.
func (ix *StationIndex) FindNear(p domain.Coordinates, radiusMiles float64, limit int) []StationCandidate {
	// Bounding-box prefilter. Longitude degrees shrink by cos(lat), so the
	// box is widened accordingly; membership is still decided by exact
	// distance below.
	latDelta := radiusMiles / degreeMiles
	lonDegreeMiles := degreeMiles * math.Cos(p.Lat*math.Pi/180)

	lonDelta := math.MaxFloat64
	if lonDegreeMiles > 1e-9 {
		lonDelta = radiusMiles / lonDegreeMiles
	}

	out := make([]StationCandidate, 0, 16)
	for _, s := range ix.stations {
		if math.Abs(s.Coord.Lat-p.Lat) > latDelta {
			continue
		}
		if math.Abs(s.Coord.Lon-p.Lon) > lonDelta {
			continue
		}

		d := domain.HaversineMiles(p, *s.Coord)
		if d > radiusMiles {
			continue
		}
		out = append(out, StationCandidate{Station: s, DistanceMiles: d})
	}

	slices.SortFunc(out, func(a, b StationCandidate) int {
		if a.Station.PricePerGallon != b.Station.PricePerGallon {
			if a.Station.PricePerGallon < b.Station.PricePerGallon {
				return -1
			}
			return 1
		}
		if a.DistanceMiles != b.DistanceMiles {
			if a.DistanceMiles < b.DistanceMiles {
				return -1
			}
			return 1
		}
		if a.Station.StationID < b.Station.StationID {
			return -1
		}
		if a.Station.StationID > b.Station.StationID {
			return 1
		}
		return 0
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}
