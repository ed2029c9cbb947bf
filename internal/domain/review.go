package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the moderation state of a review.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known moderation states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Review is a customer review of a product.
type Review struct {
	ID            uuid.UUID `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductHandle string    `json:"product_handle,omitempty"`
	Rating        int       `json:"rating"`
	Title         string    `json:"title,omitempty"`
	Body          string    `json:"body"`
	AuthorName    string    `json:"author_name"`
	AuthorEmail   string    `json:"-"`
	VerifiedBuyer bool      `json:"verified_buyer"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// SubmitReviewRequest carries a new review submission.
type SubmitReviewRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	ProductHandle string `json:"product_handle"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Title         string `json:"title" validate:"max=100"`
	Body          string `json:"body" validate:"required,max=5000"`
	AuthorName    string `json:"author_name" validate:"required"`
	AuthorEmail   string `json:"author_email" validate:"required,email"`
}

// VerifyRequest asks whether a customer has purchased a product.
type VerifyRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// ModerateReviewRequest changes a review's moderation state.
type ModerateReviewRequest struct {
	ID     string `json:"id" validate:"required"`
	Status Status `json:"status" validate:"required"`
}

// ReviewPage is one page of approved reviews for a product.
type ReviewPage struct {
	Reviews    []Review `json:"reviews"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	TotalCount int      `json:"total_count"`
}
