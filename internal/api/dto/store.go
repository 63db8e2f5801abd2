package dto

type StoreResponse struct {
	StoreID       string   `json:"store_id"`
	Name          string   `json:"name"`
	StreetAddress string   `json:"street_address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Zipcode       string   `json:"zipcode"`
	Lat           *float64 `json:"lat"`
	Lon           *float64 `json:"lon"`
	Items         []string `json:"items"`
}

type ListStoresResponse struct {
	Stores []StoreResponse `json:"stores"`
}

type ItemResponse struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	Aisle       string `json:"aisle"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type SearchItemsResponse struct {
	Items []ItemResponse `json:"items"`
}
