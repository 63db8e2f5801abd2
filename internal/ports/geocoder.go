package ports

import (
	"context"

	"grocery-route-service/internal/domain"
)

// Contract for resolving a postal address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Persistent cache mapping normalized addresses to coordinates.
type GeocodeCache interface {
	// Fetch cached coordinates for the given addresses. Missing addresses are
	// simply absent from the result map.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)

	// Store address -> coordinate mappings in the cache.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// Persistent cache for origin->destination distances in miles. Keys are
// expected to be consistent (e.g., rounded coordinate strings) by the caller.
type DistanceCache interface {
	// Fetch cached distances for one origin and multiple destinations.
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]float64, error)

	// Store many cached distances for a single origin.
	PutMany(ctx context.Context, origin string, results map[string]float64) error
}
