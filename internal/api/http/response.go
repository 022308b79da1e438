package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/logger"
)

// ErrorResponse is the structured failure envelope for expected business
// errors; transport failures surface as plain 5xx.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Success: false, Error: message})
}

// respondServiceError maps service errors onto the wire: business failures
// become structured {success:false, error} responses, anything else is an
// infrastructure failure reported as 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrOrganisationNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotAuthorized):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrDuplicatePendingRequest),
		errors.Is(err, domain.ErrRequestAlreadyResolved),
		errors.Is(err, domain.ErrAlreadyAffiliated),
		errors.Is(err, domain.ErrOrganisationNotActive),
		errors.Is(err, domain.ErrInvalidStatusTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidRequestStatus):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
