package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Log.WithError(err).Error("Failed to encode response")
		}
	}
}

// writeError maps the service error taxonomy onto HTTP statuses. Anything not
// in the taxonomy is a 500 with a generic body.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated),
		errors.Is(err, apperr.ErrInvalidSession),
		errors.Is(err, apperr.ErrInvalidIdentityToken):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	default:
		logger.Log.WithError(err).Error("Unhandled error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// parseDate accepts the date formats clients actually send: a bare calendar
// day or a full RFC3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
