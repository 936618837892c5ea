package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/investiai/portfolio-backend/internal/api/response"
	"github.com/investiai/portfolio-backend/internal/apperrors"
	"github.com/investiai/portfolio-backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// parseJSON decodes the request body into dst. On failure it writes a 400
// response and returns false; callers must return immediately.
func parseJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// respondServiceError maps domain errors to HTTP status codes. Validation
// errors carry their field map as details; everything unrecognized becomes
// a 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrAssetNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrDividendNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), "")

	case errors.Is(err, apperrors.ErrDuplicateTicker):
		response.RespondError(w, http.StatusConflict, err.Error(), "")

	case errors.Is(err, apperrors.ErrInvalidQuantity),
		errors.Is(err, apperrors.ErrInvalidPrice),
		errors.Is(err, apperrors.ErrInvalidTransactionType):
		response.RespondError(w, http.StatusBadRequest, err.Error(), "")

	case errors.Is(err, apperrors.ErrEmptyImport):
		response.RespondError(w, http.StatusUnprocessableEntity, err.Error(), "")

	case errors.Is(err, apperrors.ErrPriceSource):
		response.RespondError(w, http.StatusBadGateway, err.Error(), "")

	case errors.Is(err, apperrors.ErrAPIKeyNotConfigured),
		errors.Is(err, apperrors.ErrAdvisorUnavailable):
		response.RespondError(w, http.StatusServiceUnavailable, err.Error(), "")

	default:
		log.Printf("Unhandled service error: %v", err)
		response.RespondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}
