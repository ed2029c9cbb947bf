package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Sugar-Kane/shopify-reviews-backend/internal/domain"
	"github.com/Sugar-Kane/shopify-reviews-backend/internal/repository"
	apperrors "github.com/Sugar-Kane/shopify-reviews-backend/pkg/errors"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/logger"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/pagination"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/slug"
)

const (
	defaultAdminLimit = 50
	maxAdminLimit     = 200
)

// PurchaseVerifier decides whether an email has a qualifying order
// containing a product.
type PurchaseVerifier interface {
	VerifyPurchase(ctx context.Context, productID, email string) (bool, error)
}

// EventPublisher publishes review lifecycle events.
type EventPublisher interface {
	PublishReviewSubmitted(ctx context.Context, review *domain.Review) error
	PublishReviewModerated(ctx context.Context, id string, status domain.Status) error
}

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	repo     repository.ReviewRepository
	verifier PurchaseVerifier
	events   EventPublisher
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ReviewRepository, verifier PurchaseVerifier, events EventPublisher, log *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:     repo,
		verifier: verifier,
		events:   events,
		logger:   log,
	}
}

// Submit persists a new review in the pending state. Purchase verification
// failures are downgraded to verified_buyer=false, never blocking the
// submission.
func (s *ReviewService) Submit(ctx context.Context, req *domain.SubmitReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if len(req.Body) > 5000 {
		return nil, apperrors.InvalidInput("body must be at most 5000 characters")
	}

	verified, err := s.verifier.VerifyPurchase(ctx, req.ProductID, req.AuthorEmail)
	if err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "purchase verification failed, storing as unverified",
			slog.String("product_id", req.ProductID),
			slog.String("error", err.Error()),
		)
		verified = false
	}

	review := &domain.Review{
		ProductID:     req.ProductID,
		ProductHandle: slug.Generate(req.ProductHandle),
		Rating:        req.Rating,
		Title:         req.Title,
		Body:          req.Body,
		AuthorName:    req.AuthorName,
		AuthorEmail:   req.AuthorEmail,
		VerifiedBuyer: verified,
		Status:        domain.StatusPending,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", review.ID.String()),
		slog.String("product_id", review.ProductID),
		slog.Int("rating", review.Rating),
		slog.Bool("verified_buyer", review.VerifiedBuyer),
	)

	if err := s.events.PublishReviewSubmitted(ctx, review); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review.submitted event",
			slog.String("review_id", review.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return review, nil
}

// ListApproved returns one page of approved reviews for a product, newest
// first. An empty result set still reports one page.
func (s *ReviewService) ListApproved(ctx context.Context, productID string, params pagination.Params) (*domain.ReviewPage, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product_id is required")
	}

	reviews, total, err := s.repo.ListApproved(ctx, productID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list approved reviews: %w", err)
	}

	return &domain.ReviewPage{
		Reviews:    reviews,
		Page:       params.Page,
		TotalPages: pagination.TotalPages(total, params.Limit),
		TotalCount: total,
	}, nil
}

// Verify runs the purchase check directly. Unlike Submit, verifier errors
// are surfaced to the caller.
func (s *ReviewService) Verify(ctx context.Context, req *domain.VerifyRequest) (bool, error) {
	verified, err := s.verifier.VerifyPurchase(ctx, req.ProductID, req.Email)
	if err != nil {
		return false, fmt.Errorf("verify purchase: %w", err)
	}
	return verified, nil
}

// AdminList returns reviews in the given moderation state, newest first.
// Status defaults to pending and limit to 50, capped at 200.
func (s *ReviewService) AdminList(ctx context.Context, status domain.Status, limit int) ([]domain.Review, error) {
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, apperrors.InvalidInput("status must be one of pending, approved, rejected")
	}
	if limit <= 0 {
		limit = defaultAdminLimit
	}
	if limit > maxAdminLimit {
		limit = maxAdminLimit
	}

	reviews, err := s.repo.ListByStatus(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews by status: %w", err)
	}

	return reviews, nil
}

// Moderate sets a review's status to approved or rejected. Moderating an
// unknown id succeeds as a no-op.
func (s *ReviewService) Moderate(ctx context.Context, req *domain.ModerateReviewRequest) error {
	if req.Status != domain.StatusApproved && req.Status != domain.StatusRejected {
		return apperrors.InvalidInput("status must be approved or rejected")
	}

	if err := s.repo.UpdateStatus(ctx, req.ID, req.Status); err != nil {
		return fmt.Errorf("update review status: %w", err)
	}

	s.logger.InfoContext(ctx, "review moderated",
		slog.String("review_id", req.ID),
		slog.String("status", string(req.Status)),
	)

	if err := s.events.PublishReviewModerated(ctx, req.ID, req.Status); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review.moderated event",
			slog.String("review_id", req.ID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
