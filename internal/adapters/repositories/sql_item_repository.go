package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"grocery-route-service/internal/domain"
)

// SQLItemRepository is the Postgres-backed implementation of the
// ItemRepository port.
type SQLItemRepository struct{ DB *sql.DB }

func NewSQLItemRepository(db *sql.DB) *SQLItemRepository {
	return &SQLItemRepository{DB: db}
}

// Find items whose name contains the given fragment, case-insensitively.
func (s *SQLItemRepository) SearchItems(ctx context.Context, name string) ([]*domain.FoodItem, error) {
	if s.DB == nil {
		return nil, errors.New("sql item repository: DB is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return []*domain.FoodItem{}, nil
	}

	q := `
	SELECT item_id, name, COALESCE(aisle, ''), COALESCE(category, ''), COALESCE(description, ''), COALESCE(image_url, '')
	FROM items
	WHERE name ILIKE '%' || $1 || '%'
	ORDER BY name;
	`

	rows, err := s.DB.QueryContext(ctx, q, name)
	if err != nil {
		return nil, fmt.Errorf("search items: query items table: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// Return one item by its identifier, or nil when it does not exist.
func (s *SQLItemRepository) GetItem(ctx context.Context, itemID string) (*domain.FoodItem, error) {
	if s.DB == nil {
		return nil, errors.New("sql item repository: DB is nil")
	}

	q := `
	SELECT item_id, name, COALESCE(aisle, ''), COALESCE(category, ''), COALESCE(description, ''), COALESCE(image_url, '')
	FROM items
	WHERE item_id = $1;
	`

	rows, err := s.DB.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: query items table: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}
