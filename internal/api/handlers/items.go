package handlers

import (
	"log"
	"net/http"
	"strings"

	"grocery-route-service/internal/api/dto"
	"grocery-route-service/internal/ports"
)

// ItemHandler lets clients resolve item display names to identifiers.
type ItemHandler struct {
	Repo ports.ItemRepository
}

func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, http.StatusBadRequest, "query parameter q is required")
		return
	}

	items, err := h.Repo.SearchItems(r.Context(), q)
	if err != nil {
		log.Printf("search items failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.SearchItemsResponse{
		Items: make([]dto.ItemResponse, 0, len(items)),
	}
	for _, it := range items {
		res.Items = append(res.Items, dto.ItemResponse{
			ItemID:      it.ItemID,
			Name:        it.Name,
			Aisle:       it.Aisle,
			Category:    it.Category,
			Description: it.Description,
			ImageURL:    it.ImageURL,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
