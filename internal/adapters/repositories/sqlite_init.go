package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStoresQuery := `
	CREATE TABLE IF NOT EXISTS stores (
		store_id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		store_id TEXT PRIMARY KEY REFERENCES stores(store_id),
		street_address TEXT,
		city TEXT,
		state TEXT,
		zipcode TEXT,
		latitude REAL,
		longitude REAL
	);
	`

	createItemsQuery := `
	CREATE TABLE IF NOT EXISTS items (
		item_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		aisle TEXT,
		category TEXT,
		description TEXT,
		image_url TEXT
	);
	`

	createStoreItemsQuery := `
	CREATE TABLE IF NOT EXISTS store_items (
		store_id TEXT NOT NULL REFERENCES stores(store_id),
		item_id TEXT NOT NULL,
		PRIMARY KEY (store_id, item_id)
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_miles REAL NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	createLocationIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_locations_lat_lon
    ON locations(latitude, longitude);
	`

	statements := []string{
		createStoresQuery,
		createLocationsQuery,
		createItemsQuery,
		createStoreItemsQuery,
		createDistanceCacheQuery,
		createGeocodeCacheQuery,
		createLocationIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the SQLite database with store and item data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	data, err := loadSeedFile(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stores: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	storeStmt, err := tx.Prepare(`INSERT OR REPLACE INTO stores (store_id, name) VALUES (?, ?);`)
	if err != nil {
		return fmt.Errorf("seed stores: prepare store insert: %w", err)
	}
	defer storeStmt.Close()

	locStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO locations (
		store_id, street_address, city, state, zipcode, latitude, longitude
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed stores: prepare location insert: %w", err)
	}
	defer locStmt.Close()

	linkStmt, err := tx.Prepare(`INSERT OR REPLACE INTO store_items (store_id, item_id) VALUES (?, ?);`)
	if err != nil {
		return fmt.Errorf("seed stores: prepare store_items insert: %w", err)
	}
	defer linkStmt.Close()

	itemStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO items (
		item_id, name, aisle, category, description, image_url
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed stores: prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	for _, s := range data.Stores {
		if _, err := storeStmt.Exec(s.StoreID, s.Name); err != nil {
			return fmt.Errorf("seed stores: insert store %q: %w", s.StoreID, err)
		}
		if _, err := locStmt.Exec(s.StoreID, s.StreetAddress, s.City, s.State, s.Zipcode, s.Latitude, s.Longitude); err != nil {
			return fmt.Errorf("seed stores: insert location for %q: %w", s.StoreID, err)
		}
		for _, itemID := range s.Items {
			if _, err := linkStmt.Exec(s.StoreID, itemID); err != nil {
				return fmt.Errorf("seed stores: link %q -> %q: %w", s.StoreID, itemID, err)
			}
		}
	}

	for _, it := range data.Items {
		if _, err := itemStmt.Exec(it.ItemID, it.Name, it.Aisle, it.Category, it.Description, it.ImageURL); err != nil {
			return fmt.Errorf("seed stores: insert item %q: %w", it.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stores: commit tx: %w", err)
	}

	return nil
}
