package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"paper-mart/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse carries field-level errors plus the submitted values
// so the creation form can be redisplayed with prior input intact.
type ValidationResponse struct {
	Error  string                 `json:"error"`
	Errors model.ValidationErrors `json:"errors"`
	Values any                    `json:"values,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Not-found
// and bad-request conditions are resolved here; anything unrecognised is a
// store failure and surfaces as a generic 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	switch {
	case errors.Is(err, model.ErrCategoryNotFound), errors.Is(err, model.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, model.ErrSlugRequired):
		writeError(w, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, model.ErrCategoryInUse), errors.Is(err, model.ErrCategoryDepth):
		writeError(w, http.StatusConflict, err.Error(), logger)
	default:
		logger.Error().Err(err).Msg("unexpected failure")
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
	}
}
