package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fittrack/fittrack-be/internal/apperr"
	"github.com/fittrack/fittrack-be/internal/auth"
	"github.com/fittrack/fittrack-be/internal/models"
	"github.com/fittrack/fittrack-be/internal/services"
)

// GoalHandler handles HTTP requests for goal management. All routes
// sit behind the auth guard, so an identity is always present.
type GoalHandler struct {
	service services.GoalServiceProvider
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(service services.GoalServiceProvider) *GoalHandler {
	return &GoalHandler{service: service}
}

// GetAll lists the caller's goals.
func (h *GoalHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		RespondError(w, apperr.Authentication("no token provided"))
		return
	}

	goals, err := h.service.GetGoalsByUserID(r.Context(), identity.UserID)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondJSON(w, goals, http.StatusOK)
}

// Create stores a new goal owned by the caller.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		RespondError(w, apperr.Authentication("no token provided"))
		return
	}

	var input services.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		RespondError(w, apperr.Validation("invalid request body"))
		return
	}

	goal, err := h.service.CreateGoal(r.Context(), identity.UserID, input)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondJSON(w, goal, http.StatusCreated)
}

// Update applies a partial update to one of the caller's goals.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		RespondError(w, apperr.Authentication("no token provided"))
		return
	}

	var update models.GoalUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		RespondError(w, apperr.Validation("invalid request body"))
		return
	}

	goal, err := h.service.UpdateGoal(r.Context(), chi.URLParam(r, "id"), identity.UserID, update)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondJSON(w, goal, http.StatusOK)
}

// Delete removes one of the caller's goals.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		RespondError(w, apperr.Authentication("no token provided"))
		return
	}

	if err := h.service.DeleteGoal(r.Context(), chi.URLParam(r, "id"), identity.UserID); err != nil {
		RespondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
