package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"emotispell/internal/service"
	"emotispell/internal/validation"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": userMsg})
}

// respondServiceError translates service-layer errors into HTTP
// responses. Validation errors carry their own message; everything
// unrecognized is a 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr validation.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithError(w, http.StatusBadRequest, verr.Error(), "", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid username or password", "", nil)
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found", "", nil)
	case errors.Is(err, service.ErrConflict):
		respondWithError(w, http.StatusConflict, "Conflict", "", nil)
	case errors.Is(err, service.ErrTransient):
		respondWithError(w, http.StatusServiceUnavailable, "Temporarily unavailable", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "request failed", err)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
