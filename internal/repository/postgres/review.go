package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Sugar-Kane/shopify-reviews-backend/internal/domain"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/database"
)

// ReviewRepository implements review persistence operations using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review into the database. The id and created_at
// columns are generated server-side.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (product_id, product_handle, rating, title, body, author_name, author_email, verified_buyer, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	ctx, end := database.TraceQuery(ctx, "reviews.create", query)
	err := r.pool.QueryRow(ctx, query,
		review.ProductID,
		review.ProductHandle,
		review.Rating,
		review.Title,
		review.Body,
		review.AuthorName,
		review.AuthorEmail,
		review.VerifiedBuyer,
		review.Status,
	).Scan(&review.ID, &review.CreatedAt)
	end(err)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ListApproved returns a page of approved reviews for a product, newest
// first, along with the total approved count. The count is a separate
// round-trip so that a page past the end still reports the real total.
func (r *ReviewRepository) ListApproved(ctx context.Context, productID string, limit, offset int) ([]domain.Review, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM reviews
		WHERE product_id = $1 AND status = 'approved'`

	var totalCount int
	ctx, end := database.TraceQuery(ctx, "reviews.count_approved", countQuery)
	err := r.pool.QueryRow(ctx, countQuery, productID).Scan(&totalCount)
	end(err)
	if err != nil {
		return nil, 0, fmt.Errorf("count approved reviews: %w", err)
	}

	query := `
		SELECT id, product_id, product_handle, rating, title, body, author_name, author_email, verified_buyer, status, created_at
		FROM reviews
		WHERE product_id = $1 AND status = 'approved'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	ctx, end = database.TraceQuery(ctx, "reviews.list_approved", query)
	rows, err := r.pool.Query(ctx, query, productID, limit, offset)
	if err != nil {
		end(err)
		return nil, 0, fmt.Errorf("list approved reviews: %w", err)
	}
	defer rows.Close()

	reviews, err := scanReviews(rows)
	end(err)
	if err != nil {
		return nil, 0, err
	}

	return reviews, totalCount, nil
}

// ListByStatus returns up to limit reviews in the given moderation state,
// newest first.
func (r *ReviewRepository) ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Review, error) {
	query := `
		SELECT id, product_id, product_handle, rating, title, body, author_name, author_email, verified_buyer, status, created_at
		FROM reviews
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2`

	ctx, end := database.TraceQuery(ctx, "reviews.list_by_status", query)
	rows, err := r.pool.Query(ctx, query, status, limit)
	if err != nil {
		end(err)
		return nil, fmt.Errorf("list reviews by status: %w", err)
	}
	defer rows.Close()

	reviews, err := scanReviews(rows)
	end(err)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// UpdateStatus sets the moderation state of a single review. An unknown id
// affects zero rows and is not reported as an error.
func (r *ReviewRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	query := `
		UPDATE reviews
		SET status = $2
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "reviews.update_status", query)
	_, err := r.pool.Exec(ctx, query, id, status)
	end(err)
	if err != nil {
		return fmt.Errorf("update review status: %w", err)
	}

	return nil
}

func scanReviews(rows pgx.Rows) ([]domain.Review, error) {
	var reviews []domain.Review

	for rows.Next() {
		var rv domain.Review

		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.ProductHandle,
			&rv.Rating,
			&rv.Title,
			&rv.Body,
			&rv.AuthorName,
			&rv.AuthorEmail,
			&rv.VerifiedBuyer,
			&rv.Status,
			&rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}

		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, nil
}
