package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Sugar-Kane/shopify-reviews-backend/internal/domain"
	"github.com/Sugar-Kane/shopify-reviews-backend/internal/service"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/httputil"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/validator"
)

// AdminHandler handles the moderation endpoints. Authentication is the
// responsibility of a gateway in front of this service.
type AdminHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.ReviewService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

// ListReviews handles GET /admin/reviews. Returns reviews filtered by the
// status query parameter, defaulting to pending.
func (h *AdminHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	status := domain.Status(r.URL.Query().Get("status"))

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	reviews, err := h.service.AdminList(r.Context(), status, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

// ModerateReview handles POST /admin/reviews. Approves or rejects a single
// review by id.
func (h *AdminHandler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	var req domain.ModerateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Message{Message: "invalid JSON body"})
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.Moderate(r.Context(), &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
