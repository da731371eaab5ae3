package handlers

import (
	"net/http"

	"assethub/src/utils"
)

func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)
	locations, err := h.Lookups.Locations(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, locations, http.StatusOK)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)
	categories, err := h.Lookups.Categories(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, categories, http.StatusOK)
}
