package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"kerygma-studio/internal/domain"

	apperrors "kerygma-studio/pkg/errors"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps a service error onto an HTTP response. AppErrors
// carry their own status; known sentinels map to 404, everything else is 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, map[string]string{
			"error": appErr.Message,
			"type":  string(appErr.Type),
		})
		return
	}
	switch {
	case errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrSermonNotFound),
		errors.Is(err, domain.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
