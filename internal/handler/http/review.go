package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Sugar-Kane/shopify-reviews-backend/internal/domain"
	"github.com/Sugar-Kane/shopify-reviews-backend/internal/service"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/httputil"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/pagination"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/validator"
)

// ReviewHandler handles HTTP requests for the public review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// ListReviews handles GET /reviews. Returns one page of approved reviews
// for the product given by the product_id query parameter.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Message{Message: "product_id is required"})
		return
	}

	params := pagination.FromRequest(r)

	result, err := h.service.ListApproved(r.Context(), productID, params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// SubmitReview handles POST /reviews. The review is stored pending
// moderation; purchase verification never blocks the submission.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Message{Message: "invalid JSON body"})
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if _, err := h.service.Submit(r.Context(), &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// VerifyPurchase handles POST /verify. Runs the purchase check on demand;
// verifier failures surface as 500 here, unlike the submit path.
func (h *ReviewHandler) VerifyPurchase(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Message{Message: "invalid JSON body"})
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	verified, err := h.service.Verify(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"verified": verified})
}
