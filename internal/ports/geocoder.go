package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Contract for resolving a free-text place name to coordinates.
type Geocoder interface {
	// Return the best-match coordinates for the given place name.
	Geocode(ctx context.Context, place string) (domain.Coordinates, error)
}
