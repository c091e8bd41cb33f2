package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fittrack/fittrack-be/internal/apperr"
	"github.com/fittrack/fittrack-be/internal/auth"
	"github.com/fittrack/fittrack-be/internal/services"
)

// UserHandler handles HTTP requests for the caller's own profile.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe retrieves the profile of the authenticated caller.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		RespondError(w, apperr.Authentication("no token provided"))
		return
	}

	user, err := h.service.GetByID(r.Context(), identity.UserID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if user == nil {
		RespondError(w, apperr.NotFound("user not found"))
		return
	}

	respondJSON(w, user, http.StatusOK)
}

// UpdateMe updates the caller's profile information.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		RespondError(w, apperr.Authentication("no token provided"))
		return
	}

	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondError(w, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), identity.UserID, payload.Name, payload.Email)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondJSON(w, user, http.StatusOK)
}

// ChangePassword rotates the caller's password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		RespondError(w, apperr.Authentication("no token provided"))
		return
	}

	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondError(w, apperr.Validation("invalid request body"))
		return
	}

	if err := h.service.UpdatePassword(r.Context(), identity.UserID, payload.CurrentPassword, payload.NewPassword); err != nil {
		RespondError(w, err)
		return
	}

	respondJSON(w, map[string]string{"message": "password updated"}, http.StatusOK)
}
