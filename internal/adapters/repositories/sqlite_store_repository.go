package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"grocery-route-service/internal/domain"
	"grocery-route-service/internal/geo"
)

// SQLite-backed implementation of the StoreRepository port.
type SqliteStoreRepository struct{ DB *sql.DB }

func NewSqliteStoreRepository(db *sql.DB) *SqliteStoreRepository {
	return &SqliteStoreRepository{DB: db}
}

const sqliteStoreColumns = `
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
func (s *SqliteStoreRepository) ListStores(ctx context.Context) ([]*domain.Store, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, sqliteStoreColumns+` ORDER BY s.store_id;`)
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
func (s *SqliteStoreRepository) GetStore(ctx context.Context, storeID string) (*domain.Store, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, sqliteStoreColumns+` WHERE s.store_id = ?;`, storeID)
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
func (s *SqliteStoreRepository) StoresNear(
	ctx context.Context,
	center domain.Coordinates,
	radiusMiles float64,
) ([]*domain.Store, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store repository: DB is nil")
	}
	if !center.Valid() {
		return nil, errors.New("stores near: center is unresolved")
	}

	minLon, minLat, maxLon, maxLat := geo.BoundAround(center, radiusMiles)

	rows, err := s.DB.QueryContext(ctx, sqliteStoreColumns+`
	WHERE l.latitude BETWEEN ? AND ?
		AND l.longitude BETWEEN ? AND ?
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
func (s *SqliteStoreRepository) loadItems(ctx context.Context, stores []*domain.Store) error {
	if len(stores) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Store, len(stores))
	ph := make([]string, 0, len(stores))
	args := make([]any, 0, len(stores))
	for _, st := range stores {
		byID[st.StoreID] = st
		ph = append(ph, "?")
		args = append(args, st.StoreID)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT store_id, item_id
	FROM store_items
	WHERE store_id IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
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

// scanStores converts store+location rows into domain stores. A row with
// NULL coordinates yields an unresolved location rather than an error.
func scanStores(rows *sql.Rows) ([]*domain.Store, error) {
	stores := make([]*domain.Store, 0, 16)
	for rows.Next() {
		var (
			st       domain.Store
			lat, lon sql.NullFloat64
		)
		err := rows.Scan(
			&st.StoreID,
			&st.Name,
			&st.Address.Street,
			&st.Address.City,
			&st.Address.State,
			&st.Address.Zipcode,
			&lat,
			&lon,
		)
		if err != nil {
			return nil, fmt.Errorf("scan store row: %w", err)
		}

		if lat.Valid && lon.Valid {
			st.Location = domain.Coordinates{Lon: lon.Float64, Lat: lat.Float64}
		} else {
			st.Location = domain.Unresolved()
		}
		st.Items = domain.NewItemSet()

		stores = append(stores, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store row iteration: %w", err)
	}

	return stores, nil
}
