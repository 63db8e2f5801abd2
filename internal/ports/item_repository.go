package ports

import (
	"context"

	"grocery-route-service/internal/domain"
)

// Port: a boundary for retrieving FoodItem catalog entries.
type ItemRepository interface {
	// Find items whose name contains the given fragment (case-insensitive).
	SearchItems(ctx context.Context, name string) ([]*domain.FoodItem, error)

	// Retrieve one item by its identifier.
	GetItem(ctx context.Context, itemID string) (*domain.FoodItem, error)
}
