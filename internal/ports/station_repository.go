package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Port: a boundary for retrieving FuelStation entities from a data source.
type StationRepository interface {
	// Retrieve the full station catalogue, including stations whose
	// addresses never geocoded (their Coord is nil).
	ListStations(ctx context.Context) ([]*domain.FuelStation, error)
}
