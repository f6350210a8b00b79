package handlers

import (
	"errors"
	"net/http"

	"feedback-dashboard/internal/analytics"
	"feedback-dashboard/internal/repository"
)

type AnalyticsHandler struct {
	service *analytics.Service
}

func NewAnalyticsHandler(service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// --- GET /analytics/stats ---

func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err, "compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- GET /analytics/trends ---

func (h *AnalyticsHandler) LatestTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.service.LatestTrends(r.Context())
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no trends snapshot yet")
		return
	}
	if err != nil {
		writeServiceError(w, err, "load trends")
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

// --- POST /analytics/trends ---

func (h *AnalyticsHandler) RefreshTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.service.RefreshTrends(r.Context())
	if err != nil {
		writeServiceError(w, err, "refresh trends")
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

// --- GET /analytics/summary ---

func (h *AnalyticsHandler) LatestSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.LatestSummary(r.Context())
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no summary snapshot yet")
		return
	}
	if err != nil {
		writeServiceError(w, err, "load summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// --- POST /analytics/summary ---

func (h *AnalyticsHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.GenerateSummary(r.Context())
	if err != nil {
		writeServiceError(w, err, "generate summary")
		return
	}
	writeJSON(w, http.StatusOK, aiResult{Result: outcome.Value, Degraded: outcome.Degraded()})
}
