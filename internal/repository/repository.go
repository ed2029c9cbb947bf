package repository

import (
	"context"

	"github.com/Sugar-Kane/shopify-reviews-backend/internal/domain"
)

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// ListApproved returns a page of approved reviews for a product,
	// newest first, along with the total approved count.
	ListApproved(ctx context.Context, productID string, limit, offset int) ([]domain.Review, int, error)

	// ListByStatus returns up to limit reviews in the given moderation
	// state, newest first.
	ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Review, error)

	// UpdateStatus sets the moderation state of the review with the given
	// id. Updating an unknown id is a no-op, not an error.
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
}
