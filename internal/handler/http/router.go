package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sugar-Kane/shopify-reviews-backend/internal/service"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/health"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/httputil"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/middleware"
)

// NewRouter creates a chi router with all reviews service routes registered.
func NewRouter(
	reviewService *service.ReviewService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("reviews"))

	// Health check and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	reviewHandler := NewReviewHandler(reviewService, logger)
	adminHandler := NewAdminHandler(reviewService, logger)

	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/reviews", reviewHandler.ListReviews)
		r.Post("/reviews", reviewHandler.SubmitReview)
		r.Post("/verify", reviewHandler.VerifyPurchase)

		r.Get("/admin/reviews", adminHandler.ListReviews)
		r.Post("/admin/reviews", adminHandler.ModerateReview)
	})

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Message{Message: "Not found"})
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}
