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

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	statuses := make([]models.AssignmentStatus, 0)
	for _, raw := range parseListParam(r, "statuses") {
		statuses = append(statuses, models.AssignmentStatus(raw))
	}

	filter := schemas.AssignmentFilter{
		Keyword:      r.URL.Query().Get("keyword"),
		Statuses:     statuses,
		AssignedDate: parseDateParam(r, "assignedDate"),
		LocationID:   r.URL.Query().Get("location"),
		Page:         parseIntParam(r, "page", 1),
		Size:         parseIntParam(r, "size", 0),
		SortKey:      r.URL.Query().Get("sort"),
		SortDir:      r.URL.Query().Get("direction"),
	}

	page, err := h.Assignments.List(ctx, filter)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, page, http.StatusOK)
}

func (h *Handler) MyAssignments(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	assignments, err := h.Assignments.MyAssignments(ctx, actor)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assignments, http.StatusOK)
}

func (h *Handler) GetAssignmentByID(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	assignment, err := h.Assignments.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assignment, http.StatusOK)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.InvalidArgument("invalid request body"))
		return
	}

	assignment, err := h.Assignments.Create(ctx, actor, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assignment, http.StatusCreated)
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.InvalidArgument("invalid request body"))
		return
	}

	assignment, err := h.Assignments.Update(ctx, actor, chi.URLParam(r, "id"), req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assignment, http.StatusOK)
}

func (h *Handler) RespondToAssignment(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.RespondAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.InvalidArgument("invalid request body"))
		return
	}

	assignment, err := h.Assignments.Respond(ctx, actor, chi.URLParam(r, "id"), req.Decision)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assignment, http.StatusOK)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	ctx := utils.WithLogger(r.Context(), h.Logger)

	actor, err := auth.CurrentUser(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Assignments.Delete(ctx, actor, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
