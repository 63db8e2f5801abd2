package api

import (
	"net/http"

	"grocery-route-service/internal/api/handlers"
	"grocery-route-service/internal/ports"
	"grocery-route-service/internal/services"
)

// PlannerConfig carries the tuning the composition root resolved from the
// environment.
type PlannerConfig struct {
	Weights       services.ScoreWeights
	MaxStores     int
	MaxExpansions int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	stores ports.StoreRepository,
	items ports.ItemRepository,
	geocoder ports.Geocoder,
	provider ports.DistanceProvider,
	planner PlannerConfig,
) http.Handler {
	mux := http.NewServeMux()

	storeHandler := &handlers.StoreHandler{Repo: stores}
	itemHandler := &handlers.ItemHandler{Repo: items}
	tripHandler := &handlers.TripHandler{
		Stores:        stores,
		Geocoder:      geocoder,
		Provider:      provider,
		Weights:       planner.Weights,
		MaxStores:     planner.MaxStores,
		MaxExpansions: planner.MaxExpansions,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stores", storeHandler.List)
	mux.HandleFunc("/items/search", itemHandler.Search)
	mux.HandleFunc("/trips", tripHandler.Plan)

	return loggingMiddleware(mux)
}
