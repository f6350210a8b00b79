package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"feedback-dashboard/internal/analytics"
	"feedback-dashboard/internal/models"

	"github.com/go-chi/chi/v5"
)

const defaultRecentLimit = 5

type FeedbackHandler struct {
	service *analytics.Service
}

func NewFeedbackHandler(service *analytics.Service) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
	}
}

type SubmitFeedbackRequest struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	Rating    *int   `json:"rating"`
	Comment   string `json:"comment"`
	Category  string `json:"category"`
}

type UpdateStatusRequest struct {
	Status models.Status `json:"status"`
}

type RespondRequest struct {
	Response string `json:"response"`
}

// --- GET /feedbacks ---

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := analytics.Filter{
		Search: q.Get("search"),
	}

	if status := q.Get("status"); status != "" && status != "all" {
		filter.Status = models.Status(status)
		if !filter.Status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
	}
	if rating := q.Get("rating"); rating != "" && rating != "all" {
		n, err := strconv.Atoi(rating)
		if err != nil || n < 1 || n > 5 {
			writeError(w, http.StatusBadRequest, "rating filter must be between 1 and 5")
			return
		}
		filter.Rating = n
	}

	feedbacks, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "list feedback")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(feedbacks),
		"feedbacks": feedbacks,
	})
}

// --- GET /feedbacks/recent ---

func (h *FeedbackHandler) RecentFeedback(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	feedbacks, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err, "list recent feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"feedbacks": feedbacks,
	})
}

// --- GET /feedbacks/{id} ---

func (h *FeedbackHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "get feedback")
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

// --- POST /feedbacks ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	if req.Rating == nil && strings.TrimSpace(req.Comment) == "" {
		writeError(w, http.StatusBadRequest, "a rating or a comment is required")
		return
	}

	feedback := &models.Feedback{
		UserID:    req.UserID,
		UserName:  strings.TrimSpace(req.UserName),
		UserEmail: strings.TrimSpace(strings.ToLower(req.UserEmail)),
		Rating:    req.Rating,
		Comment:   req.Comment,
		Category:  strings.TrimSpace(req.Category),
	}

	if err := h.service.Submit(r.Context(), feedback); err != nil {
		writeServiceError(w, err, "submit feedback")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "feedback submitted successfully",
		"feedback": feedback,
	})
}

// --- PATCH /feedbacks/{id}/status ---

func (h *FeedbackHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeServiceError(w, err, "update status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "status updated",
		"status":  string(req.Status),
	})
}

// --- POST /feedbacks/{id}/response ---

func (h *FeedbackHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Respond(r.Context(), chi.URLParam(r, "id"), req.Response); err != nil {
		writeServiceError(w, err, "save response")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "response saved",
	})
}

// --- DELETE /feedbacks/{id} ---

func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "delete feedback")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
