package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fittrack/fittrack-be/internal/apperr"
	"github.com/fittrack/fittrack-be/internal/services"
)

// AuthHandler handles HTTP requests for registration, login and token
// refresh.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshPayload defines the structure for refresh requests.
type RefreshPayload struct {
	RefreshToken string `json:"refreshToken"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondError(w, apperr.Validation("invalid request body"))
		return
	}

	pair, err := h.service.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondJSON(w, pair, http.StatusCreated)
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondError(w, apperr.Validation("invalid request body"))
		return
	}

	pair, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondJSON(w, pair, http.StatusOK)
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondError(w, apperr.Validation("invalid request body"))
		return
	}

	token, err := h.service.Refresh(r.Context(), payload.RefreshToken)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondJSON(w, map[string]string{"token": token}, http.StatusOK)
}
