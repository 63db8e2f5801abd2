package ports

import (
	"context"

	"grocery-route-service/internal/domain"
)

// Port: a boundary for retrieving Store entities from a data source.
type StoreRepository interface {
	// Retrieve all stores known to the catalog.
	ListStores(ctx context.Context) ([]*domain.Store, error)

	// Retrieve one store by its identifier.
	GetStore(ctx context.Context, storeID string) (*domain.Store, error)

	// Retrieve candidate stores around a center point. Implementations may
	// over-return (e.g., bounding-box queries); callers re-validate exact
	// distances themselves.
	StoresNear(ctx context.Context, center domain.Coordinates, radiusMiles float64) ([]*domain.Store, error)
}
