package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"grocery-route-service/internal/domain"
)

// SQLite-backed implementation of the ItemRepository port.
type SqliteItemRepository struct{ DB *sql.DB }

func NewSqliteItemRepository(db *sql.DB) *SqliteItemRepository {
	return &SqliteItemRepository{DB: db}
}

// Find items whose name contains the given fragment, case-insensitively.
func (s *SqliteItemRepository) SearchItems(ctx context.Context, name string) ([]*domain.FoodItem, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite item repository: DB is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return []*domain.FoodItem{}, nil
	}

	q := `
	SELECT item_id, name, COALESCE(aisle, ''), COALESCE(category, ''), COALESCE(description, ''), COALESCE(image_url, '')
	FROM items
	WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
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
func (s *SqliteItemRepository) GetItem(ctx context.Context, itemID string) (*domain.FoodItem, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite item repository: DB is nil")
	}

	q := `
	SELECT item_id, name, COALESCE(aisle, ''), COALESCE(category, ''), COALESCE(description, ''), COALESCE(image_url, '')
	FROM items
	WHERE item_id = ?;
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

func scanItems(rows *sql.Rows) ([]*domain.FoodItem, error) {
	items := make([]*domain.FoodItem, 0, 16)
	for rows.Next() {
		var it domain.FoodItem
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Aisle, &it.Category, &it.Description, &it.ImageURL); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("item row iteration: %w", err)
	}

	return items, nil
}
