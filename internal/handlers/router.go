package handlers

import (
	"net/http"

	"feedback-dashboard/internal/analytics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every dashboard endpoint onto a chi router.
func NewRouter(service *analytics.Service, allowedOrigins []string) http.Handler {
	feedbackHandler := NewFeedbackHandler(service)
	aiHandler := NewAIHandler(service)
	analyticsHandler := NewAnalyticsHandler(service)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"feedback-dashboard"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/feedbacks", func(r chi.Router) {
		r.Get("/", feedbackHandler.ListFeedback)
		r.Post("/", feedbackHandler.SubmitFeedback)
		r.Get("/recent", feedbackHandler.RecentFeedback)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", feedbackHandler.GetFeedback)
			r.Delete("/", feedbackHandler.DeleteFeedback)
			r.Patch("/status", feedbackHandler.UpdateStatus)
			r.Post("/response", feedbackHandler.Respond)

			r.Post("/ai/analyze", aiHandler.Analyze)
			r.Post("/ai/localize", aiHandler.Localize)
			r.Post("/ai/save", aiHandler.SaveResponse)
		})
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/stats", analyticsHandler.Stats)
		r.Get("/trends", analyticsHandler.LatestTrends)
		r.Post("/trends", analyticsHandler.RefreshTrends)
		r.Get("/summary", analyticsHandler.LatestSummary)
		r.Post("/summary", analyticsHandler.GenerateSummary)
	})

	return r
}
