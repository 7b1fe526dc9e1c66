package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// GeocodeCache memoizes place-name to coordinate lookups.
// Keys are expected to be consistent (e.g., already normalized)
// by the caller.
type GeocodeCache interface {
	Get(ctx context.Context, place string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, place string, c domain.Coordinates) error
}

// RouteCache memoizes route lookups keyed by RouteKey.
type RouteCache interface {
	Get(ctx context.Context, key string) (RouteResult, bool, error)
	Put(ctx context.Context, key string, r RouteResult) error
}
