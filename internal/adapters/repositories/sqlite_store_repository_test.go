package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"grocery-route-service/internal/domain"
)

const testSeed = `{
  "stores": [
    {
      "store_id": "needham-market",
      "name": "Needham Market",
      "street_address": "999 Highland Ave",
      "city": "Needham",
      "state": "MA",
      "zipcode": "02494",
      "latitude": 42.2984,
      "longitude": -71.2335,
      "items": ["milk", "eggs"]
    },
    {
      "store_id": "boston-grocer",
      "name": "Boston Grocer",
      "street_address": "1 Main St",
      "city": "Boston",
      "state": "MA",
      "zipcode": "02108",
      "latitude": 42.3601,
      "longitude": -71.0589,
      "items": ["bread"]
    },
    {
      "store_id": "no-location",
      "name": "Unresolved Store",
      "street_address": "Unknown",
      "city": "Nowhere",
      "state": "MA",
      "zipcode": "00000",
      "items": ["milk"]
    }
  ],
  "items": [
    {"item_id": "milk", "name": "Whole Milk", "aisle": "7", "category": "Dairy"},
    {"item_id": "eggs", "name": "Large Eggs", "aisle": "7", "category": "Dairy"},
    {"item_id": "bread", "name": "Sourdough Bread", "aisle": "2", "category": "Bakery"}
  ]
}`

func newSeededDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	seedPath := filepath.Join(t.TempDir(), "stores.json")
	if err := os.WriteFile(seedPath, []byte(testSeed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return db
}

func TestSqliteStoreRepositoryListStores(t *testing.T) {
	repo := NewSqliteStoreRepository(newSeededDB(t))

	stores, err := repo.ListStores(context.Background())
	if err != nil {
		t.Fatalf("ListStores: %v", err)
	}
	if len(stores) != 3 {
		t.Fatalf("got %d stores, want 3", len(stores))
	}

	byID := map[string]*domain.Store{}
	for _, s := range stores {
		byID[s.StoreID] = s
	}

	needham := byID["needham-market"]
	if needham == nil {
		t.Fatal("needham-market missing")
	}
	if !needham.Location.Valid() {
		t.Errorf("needham-market location should be resolved")
	}
	if !needham.Items.Contains("milk") || !needham.Items.Contains("eggs") {
		t.Errorf("needham-market items = %v, want milk and eggs", needham.Items.Items())
	}
	if needham.Address.City != "Needham" {
		t.Errorf("city = %q, want Needham", needham.Address.City)
	}

	// A store without coordinates must surface as unresolved, not vanish.
	if byID["no-location"] == nil {
		t.Fatal("no-location missing")
	}
	if byID["no-location"].Location.Valid() {
		t.Errorf("no-location should be unresolved")
	}
}

func TestSqliteStoreRepositoryGetStore(t *testing.T) {
	repo := NewSqliteStoreRepository(newSeededDB(t))
	ctx := context.Background()

	s, err := repo.GetStore(ctx, "boston-grocer")
	if err != nil {
		t.Fatalf("GetStore: %v", err)
	}
	if s.Name != "Boston Grocer" {
		t.Errorf("name = %q, want Boston Grocer", s.Name)
	}
	if !s.Items.Contains("bread") {
		t.Errorf("items = %v, want bread", s.Items.Items())
	}

	if _, err := repo.GetStore(ctx, "nope"); err == nil {
		t.Errorf("expected error for unknown store")
	}
}

func TestSqliteStoreRepositoryStoresNear(t *testing.T) {
	repo := NewSqliteStoreRepository(newSeededDB(t))

	// Needham center, 5 mile box: catches the Needham store but not Boston
	// (about 12 miles away) nor the coordinate-less store.
	center := domain.Coordinates{Lon: -71.2378, Lat: 42.2809}
	stores, err := repo.StoresNear(context.Background(), center, 5)
	if err != nil {
		t.Fatalf("StoresNear: %v", err)
	}
	if len(stores) != 1 || stores[0].StoreID != "needham-market" {
		ids := make([]string, 0, len(stores))
		for _, s := range stores {
			ids = append(ids, s.StoreID)
		}
		t.Fatalf("StoresNear = %v, want [needham-market]", ids)
	}
}

func TestSqliteItemRepositorySearch(t *testing.T) {
	repo := NewSqliteItemRepository(newSeededDB(t))
	ctx := context.Background()

	items, err := repo.SearchItems(ctx, "milk")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(items) != 1 || items[0].ItemID != "milk" {
		t.Fatalf("SearchItems(milk) = %v, want the milk item", items)
	}

	// Case-insensitive substring match.
	items, err = repo.SearchItems(ctx, "BREAD")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(items) != 1 || items[0].ItemID != "bread" {
		t.Fatalf("SearchItems(BREAD) = %v, want the bread item", items)
	}

	item, err := repo.GetItem(ctx, "eggs")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item == nil || item.Name != "Large Eggs" {
		t.Fatalf("GetItem(eggs) = %v, want Large Eggs", item)
	}

	missing, err := repo.GetItem(ctx, "caviar")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if missing != nil {
		t.Errorf("GetItem(caviar) = %v, want nil", missing)
	}
}
