package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"grocery-route-service/internal/api/dto"
	"grocery-route-service/internal/domain"
	"grocery-route-service/internal/ports"
	"grocery-route-service/internal/services"
)

const (
	defaultMaxRoutes = 10
	maxCandidates    = 15
)

// TripHandler plans multi-stop shopping trips. It resolves the request into
// planner inputs and serializes the ranked routes back out; the planning
// itself lives in services.
type TripHandler struct {
	Stores   ports.StoreRepository
	Geocoder ports.Geocoder
	Provider ports.DistanceProvider

	// Planner tuning from the composition root.
	Weights       services.ScoreWeights
	MaxStores     int
	MaxExpansions int
}

func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Items) == 0 {
		writeError(w, r, http.StatusBadRequest, "items is required")
		return
	}
	if req.MaxDistanceMiles <= 0 {
		writeError(w, r, http.StatusBadRequest, "max_distance_miles must be positive")
		return
	}
	if req.MaxStores < 0 || req.MaxStores > maxCandidates {
		writeError(w, r, http.StatusBadRequest, "max_stores out of range")
		return
	}

	maxRoutes := req.MaxRoutes
	if maxRoutes <= 0 {
		maxRoutes = defaultMaxRoutes
	}

	maxStores := req.MaxStores
	if maxStores == 0 {
		maxStores = h.MaxStores
	}

	planReq := services.PlanTripRequest{
		Address:          req.Address,
		Items:            req.Items,
		MaxDistanceMiles: req.MaxDistanceMiles,
		MaxStores:        maxStores,
	}
	if req.Lat != nil && req.Lon != nil {
		planReq.Start = &domain.Coordinates{Lon: *req.Lon, Lat: *req.Lat}
	}

	opts := services.TripSearchOptions{
		Weights:       h.Weights,
		MaxExpansions: h.MaxExpansions,
	}

	plan, err := services.PlanShoppingTrip(r.Context(), planReq, h.Stores, h.Geocoder, h.Provider, opts)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	routes := plan.Routes
	if len(routes) > maxRoutes {
		routes = routes[:maxRoutes]
	}

	// An empty routes array is itself the valid "no route found" answer.
	res := dto.TripResponse{
		Start:         dto.PointResponse{Lat: plan.Start.Lat, Lon: plan.Start.Lon},
		Routes:        make([]dto.TripRouteResponse, 0, len(routes)),
		Truncated:     plan.Truncated,
		SkippedStores: plan.SkippedStores,
	}
	for _, route := range routes {
		stops := make([]dto.TripStopResponse, 0, len(route.Stops))
		for _, stop := range route.Stops {
			stops = append(stops, dto.TripStopResponse{
				StoreID:       stop.Store.StoreID,
				StoreName:     stop.Store.Name,
				Lat:           stop.Store.Location.Lat,
				Lon:           stop.Store.Location.Lon,
				DistanceMiles: stop.DistanceFromPrev,
				Score:         stop.Score,
			})
		}
		res.Routes = append(res.Routes, dto.TripRouteResponse{
			Stops:              stops,
			TotalDistanceMiles: route.TotalDistance,
			TotalScore:         route.TotalScore,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
