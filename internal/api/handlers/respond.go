package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fittrack/fittrack-be/internal/apperr"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// RespondError is the single place a classified error becomes an HTTP
// response. Unclassified errors get a generic 500 body so their text
// never leaks to the client.
func RespondError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	message := err.Error()
	if kind == apperr.KindInternal {
		message = "internal server error"
	}

	log.Error().
		Str("kind", kind.String()).
		Err(err).
		Msg("Request failed")

	respondJSON(w, ErrorResponse{Error: message}, kind.Status())
}
