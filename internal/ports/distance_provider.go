package ports

import (
	"context"

	"grocery-route-service/internal/domain"
)

// Contract for retrieving the travel distance between two points, in miles.
type DistanceProvider interface {
	// Return the travel distance in miles between two resolved points.
	Distance(ctx context.Context, from, to domain.Coordinates) (float64, error)
}
