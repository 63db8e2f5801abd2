package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type StoreSeed struct {
	StoreID       string   `json:"store_id"`
	Name          string   `json:"name"`
	StreetAddress string   `json:"street_address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Zipcode       string   `json:"zipcode"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Items         []string `json:"items"`
}

type ItemSeed struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	Aisle       string `json:"aisle"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type SeedFile struct {
	Stores []StoreSeed `json:"stores"`
	Items  []ItemSeed  `json:"items"`
}

// loadSeedFile reads and validates a seed file. Stores without coordinates
// are allowed (their locations surface as unresolved); stores without an id
// or name are not.
func loadSeedFile(jsonPath string) (*SeedFile, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed stores: read %q: %w", jsonPath, err)
	}

	var data SeedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("seed stores: parse json: %w", err)
	}

	for i, s := range data.Stores {
		if strings.TrimSpace(s.StoreID) == "" {
			return nil, fmt.Errorf("seed stores: store at index %d: store_id cannot be empty", i+1)
		}
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("seed stores: store %q: name cannot be empty", s.StoreID)
		}
	}
	for i, it := range data.Items {
		if strings.TrimSpace(it.ItemID) == "" {
			return nil, fmt.Errorf("seed stores: item at index %d: item_id cannot be empty", i+1)
		}
	}

	return &data, nil
}
