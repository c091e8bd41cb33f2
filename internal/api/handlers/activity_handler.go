package handlers

import (
	"net/http"
	"strconv"

	"github.com/fittrack/fittrack-be/internal/apperr"
	"github.com/fittrack/fittrack-be/internal/auth"
	"github.com/fittrack/fittrack-be/internal/models"
	"github.com/fittrack/fittrack-be/internal/services"
)

const defaultActivityLimit = 50

// ActivityHandler serves the caller's recent activity events.
type ActivityHandler struct {
	service services.EventServiceProvider
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service services.EventServiceProvider) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// GetRecent lists the caller's most recent activity events.
func (h *ActivityHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		RespondError(w, apperr.Authentication("no token provided"))
		return
	}

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			RespondError(w, apperr.Validation("limit must be a number between 1 and 200"))
			return
		}
		limit = parsed
	}

	events, err := h.service.GetRecentEventsForUser(r.Context(), identity.UserID, limit)
	if err != nil {
		RespondError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	respondJSON(w, events, http.StatusOK)
}
