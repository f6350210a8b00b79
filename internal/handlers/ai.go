package handlers

import (
	"encoding/json"
	"net/http"

	"feedback-dashboard/internal/analytics"
	"feedback-dashboard/internal/models"

	"github.com/go-chi/chi/v5"
)

type AIHandler struct {
	service *analytics.Service
}

func NewAIHandler(service *analytics.Service) *AIHandler {
	return &AIHandler{service: service}
}

// --- POST /feedbacks/{id}/ai/analyze ---

func (h *AIHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.Analyze(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "analyze feedback")
		return
	}
	writeJSON(w, http.StatusOK, aiResult{Result: outcome.Value, Degraded: outcome.Degraded()})
}

// --- POST /feedbacks/{id}/ai/localize?language= ---

func (h *AIHandler) Localize(w http.ResponseWriter, r *http.Request) {
	lang, ok := models.ParseLanguage(r.URL.Query().Get("language"))
	if !ok {
		writeError(w, http.StatusBadRequest, "language must be one of English, Amharic, French, Arabic")
		return
	}

	outcome, err := h.service.Localize(r.Context(), chi.URLParam(r, "id"), lang)
	if err != nil {
		writeServiceError(w, err, "localize response")
		return
	}
	writeJSON(w, http.StatusOK, aiResult{
		Result: map[string]string{
			"language": string(lang),
			"response": outcome.Value,
		},
		Degraded: outcome.Degraded(),
	})
}

// --- POST /feedbacks/{id}/ai/save ---

func (h *AIHandler) SaveResponse(w http.ResponseWriter, r *http.Request) {
	var req models.ComposedResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SentimentScore < -10 || req.SentimentScore > 10 {
		writeError(w, http.StatusBadRequest, "sentimentScore must be between -10 and 10")
		return
	}

	if err := h.service.SaveAIResponse(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		writeServiceError(w, err, "save ai response")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "ai response saved",
	})
}
