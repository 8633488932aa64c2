package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/skillswap/internal/common"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeServiceError maps a service-layer error onto an HTTP status.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrInsufficientCredits):
		writeError(w, http.StatusPaymentRequired, "insufficient credits")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrInvalidTransition),
		errors.Is(err, common.ErrInvalidState),
		errors.Is(err, common.ErrorConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeLoginError is writeServiceError for credential endpoints, where a
// failed authentication is 401 rather than 403.
func writeLoginError(w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrorUnauthorized) ||
		errors.Is(err, common.ErrorNotFound) ||
		errors.Is(err, common.ErrRefreshTokenExpired) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeServiceError(w, err)
}

// decodeJSON parses the request body into v, limiting its size.
func decodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
