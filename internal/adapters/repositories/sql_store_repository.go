package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"grocery-route-service/internal/domain"
	"grocery-route-service/internal/geo"
	"grocery-route-service/internal/platform/obs"
)

// SQLStoreRepository is the Postgres-backed implementation of the
// StoreRepository port.
type SQLStoreRepository struct{ DB *sql.DB }

func NewSQLStoreRepository(db *sql.DB) *SQLStoreRepository {
	return &SQLStoreRepository{DB: db}
}

const pgStoreColumns = `
	SELECT
		s.store_id,
		s.name,
		COALESCE(l.street_address, ''),
		COALESCE(l.city, ''),
		COALESCE(l.state, ''),
		COALESCE(l.zipcode, ''),
		l.latitude,
		l.longitude
	FROM stores s
	LEFT JOIN locations l ON l.store_id = s.store_id
`

// Return all stores known to the catalog, inventories included.
func (s *SQLStoreRepository) ListStores(ctx context.Context) (_ []*domain.Store, err error) {
	defer obs.Time(ctx, "stores.repo.ListStores")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, pgStoreColumns+` ORDER BY s.store_id;`)
	if err != nil {
		return nil, fmt.Errorf("list stores: query stores table: %w", err)
	}
	defer rows.Close()

	stores, err := scanStores(rows)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	if err := s.loadItems(ctx, stores); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	return stores, nil
}

// Return one store by its identifier, or an error when it does not exist.
func (s *SQLStoreRepository) GetStore(ctx context.Context, storeID string) (*domain.Store, error) {
	if s.DB == nil {
		return nil, errors.New("sql store repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, pgStoreColumns+` WHERE s.store_id = $1;`, storeID)
	if err != nil {
		return nil, fmt.Errorf("get store: query stores table: %w", err)
	}
	defer rows.Close()

	stores, err := scanStores(rows)
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	if len(stores) == 0 {
		return nil, fmt.Errorf("get store: store %q not found", storeID)
	}

	if err := s.loadItems(ctx, stores); err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}

	return stores[0], nil
}

// Return candidate stores inside the bounding box covering radiusMiles around
// center. The box over-returns near its corners; callers re-validate exact
// distances.
func (s *SQLStoreRepository) StoresNear(
	ctx context.Context,
	center domain.Coordinates,
	radiusMiles float64,
) (_ []*domain.Store, err error) {
	defer obs.Time(ctx, "stores.repo.StoresNear")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store repository: DB is nil")
	}
	if !center.Valid() {
		return nil, errors.New("stores near: center is unresolved")
	}

	minLon, minLat, maxLon, maxLat := geo.BoundAround(center, radiusMiles)

	rows, err := s.DB.QueryContext(ctx, pgStoreColumns+`
	WHERE l.latitude BETWEEN $1 AND $2
		AND l.longitude BETWEEN $3 AND $4
	ORDER BY s.store_id;`, minLat, maxLat, minLon, maxLon)
	if err != nil {
		return nil, fmt.Errorf("stores near: query stores table: %w", err)
	}
	defer rows.Close()

	stores, err := scanStores(rows)
	if err != nil {
		return nil, fmt.Errorf("stores near: %w", err)
	}

	if err := s.loadItems(ctx, stores); err != nil {
		return nil, fmt.Errorf("stores near: %w", err)
	}

	return stores, nil
}

// loadItems attaches inventories to the given stores with one query.
func (s *SQLStoreRepository) loadItems(ctx context.Context, stores []*domain.Store) error {
	if len(stores) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Store, len(stores))
	ids := make([]string, 0, len(stores))
	for _, st := range stores {
		byID[st.StoreID] = st
		ids = append(ids, st.StoreID)
	}

	q := `
	SELECT store_id, item_id
	FROM store_items
	WHERE store_id = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, ids)
	if err != nil {
		return fmt.Errorf("query store_items table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var storeID, itemID string
		if err := rows.Scan(&storeID, &itemID); err != nil {
			return fmt.Errorf("scan store_items row: %w", err)
		}
		if st, ok := byID[storeID]; ok {
			st.Items[itemID] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("store_items row iteration: %w", err)
	}

	return nil
}
