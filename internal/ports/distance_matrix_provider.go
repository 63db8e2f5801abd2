package ports

import (
	"context"

	"grocery-route-service/internal/domain"
)

// Optional extension of DistanceProvider that supports batched lookups.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return distances in miles from one origin to many destinations, in the
	// same order as the destinations slice.
	Distances(ctx context.Context, from domain.Coordinates, to []domain.Coordinates) ([]float64, error)
}
