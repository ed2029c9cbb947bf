package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Sugar-Kane/shopify-reviews-backend/internal/domain"
	pkgkafka "github.com/Sugar-Kane/shopify-reviews-backend/pkg/kafka"
)

// Kafka topic constants for review domain events.
const (
	TopicReviewSubmitted = "shop.review.submitted"
	TopicReviewModerated = "shop.review.moderated"
)

// Aggregate type constant.
const AggregateTypeReview = "review"

// Source identifier for events originating from this service.
const SourceReviewsService = "reviews-service"

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	Rating        int    `json:"rating"`
	VerifiedBuyer bool   `json:"verified_buyer"`
}

// ReviewModeratedData is the payload for a review.moderated event.
type ReviewModeratedData struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the reviews service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewSubmitted publishes a review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, review *domain.Review) error {
	data := ReviewSubmittedData{
		ID:            review.ID.String(),
		ProductID:     review.ProductID,
		Rating:        review.Rating,
		VerifiedBuyer: review.VerifiedBuyer,
	}

	event, err := pkgkafka.NewEvent(TopicReviewSubmitted, review.ID.String(), AggregateTypeReview, SourceReviewsService, data)
	if err != nil {
		return fmt.Errorf("create review.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewSubmitted, event); err != nil {
		return fmt.Errorf("publish review.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.submitted event",
		slog.String("review_id", review.ID.String()),
		slog.String("product_id", review.ProductID),
	)

	return nil
}

// PublishReviewModerated publishes a review.moderated event.
func (p *Producer) PublishReviewModerated(ctx context.Context, id string, status domain.Status) error {
	data := ReviewModeratedData{
		ID:     id,
		Status: string(status),
	}

	event, err := pkgkafka.NewEvent(TopicReviewModerated, id, AggregateTypeReview, SourceReviewsService, data)
	if err != nil {
		return fmt.Errorf("create review.moderated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewModerated, event); err != nil {
		return fmt.Errorf("publish review.moderated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.moderated event",
		slog.String("review_id", id),
		slog.String("status", string(status)),
	)

	return nil
}
