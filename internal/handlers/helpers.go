package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"feedback-dashboard/internal/analytics"
	"feedback-dashboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error, action string) {
	var fetchErr *analytics.DataFetchError
	var persistErr *analytics.PersistenceError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "feedback not found")
	case errors.Is(err, analytics.ErrInvalidStatus), errors.Is(err, analytics.ErrEmptyResponse):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &fetchErr):
		log.WithError(err).Errorf("Error while trying to %s", action)
		writeError(w, http.StatusBadGateway, "failed to load feedback data")
	case errors.As(err, &persistErr):
		log.WithError(err).Errorf("Error while trying to %s", action)
		writeError(w, http.StatusInternalServerError, "failed to "+action)
	default:
		log.WithError(err).Errorf("Error while trying to %s", action)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// aiResult is the body of every AI endpoint. Degraded marks a fallback value.
type aiResult struct {
	Result   interface{} `json:"result"`
	Degraded bool        `json:"degraded"`
}
