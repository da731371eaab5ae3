package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"assethub/src/auth"
	"assethub/src/models"
	"assethub/src/schemas"
	"assethub/src/utils"
)

func assetFilterFromQuery(r *http.Request) schemas.AssetFilter {
	statuses := make([]models.AssetStatus, 0)
	for _, raw := range parseListParam(r, "statuses") {
		statuses = append(statuses, models.AssetStatus(raw))
	}

	return schemas.AssetFilter{
		Keyword:    r.URL.Query().Get("keyword"),
		CategoryID: r.URL.Query().Get("category"),
		Statuses:   statuses,
		LocationID: r.URL.Query().Get("location"),
		Page:       parseIntParam(r, "page", 1),
		Size:       parseIntParam(r, "size", 0),
		SortKey:    r.URL.Query().Get("sort"),
		SortDir:    r.URL.Query().Get("direction"),
	}
}

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	page, err := h.Assets.List(ctx, assetFilterFromQuery(r))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, page, http.StatusOK)
}

func (h *Handler) GetAssetByID(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	asset, err := h.Assets.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusOK)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.InvalidArgument("invalid request body"))
		return
	}

	asset, err := h.Assets.Create(ctx, actor, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusCreated)
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.InvalidArgument("invalid request body"))
		return
	}

	asset, err := h.Assets.Update(ctx, actor, chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusOK)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Assets.Delete(ctx, actor, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
