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

func (h *Handler) ListReturningRequests(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	statuses := make([]models.ReturningRequestStatus, 0)
	for _, raw := range parseListParam(r, "statuses") {
		statuses = append(statuses, models.ReturningRequestStatus(raw))
	}

	filter := schemas.ReturningRequestFilter{
		Keyword:      r.URL.Query().Get("keyword"),
		Statuses:     statuses,
		ReturnedDate: parseDateParam(r, "returnedDate"),
		LocationID:   r.URL.Query().Get("location"),
		Page:         parseIntParam(r, "page", 1),
		Size:         parseIntParam(r, "size", 0),
		SortKey:      r.URL.Query().Get("sort"),
		SortDir:      r.URL.Query().Get("direction"),
	}

	page, err := h.Returns.List(ctx, filter)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, page, http.StatusOK)
}

func (h *Handler) CreateReturningRequest(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.CreateReturningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.InvalidArgument("invalid request body"))
		return
	}

	request, err := h.Returns.Create(ctx, actor, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, request, http.StatusCreated)
}

func (h *Handler) CompleteReturningRequest(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	request, err := h.Returns.Complete(ctx, actor, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, request, http.StatusOK)
}

func (h *Handler) CancelReturningRequest(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Returns.Cancel(ctx, actor, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
