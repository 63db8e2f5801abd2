package handlers

import (
	"log"
	"net/http"

	"grocery-route-service/internal/api/dto"
	"grocery-route-service/internal/ports"
)

// StoreHandler exposes read-only store catalog endpoints.
type StoreHandler struct {
	Repo ports.StoreRepository
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stores, err := h.Repo.ListStores(r.Context())
	if err != nil {
		log.Printf("list stores failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStoresResponse{
		Stores: make([]dto.StoreResponse, 0, len(stores)),
	}
	for _, s := range stores {
		sr := dto.StoreResponse{
			StoreID:       s.StoreID,
			Name:          s.Name,
			StreetAddress: s.Address.Street,
			City:          s.Address.City,
			State:         s.Address.State,
			Zipcode:       s.Address.Zipcode,
			Items:         s.Items.Items(),
		}
		// Unresolved locations serialize as null rather than NaN.
		if s.Location.Valid() {
			lat, lon := s.Location.Lat, s.Location.Lon
			sr.Lat, sr.Lon = &lat, &lon
		}
		res.Stores = append(res.Stores, sr)
	}

	writeJSON(w, r, http.StatusOK, res)
}
