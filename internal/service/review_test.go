package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sugar-Kane/shopify-reviews-backend/internal/domain"
	apperrors "github.com/Sugar-Kane/shopify-reviews-backend/pkg/errors"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/pagination"
)

// --- Mock Review Repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil {
		review.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockReviewRepository) ListApproved(ctx context.Context, productID string, limit, offset int) ([]domain.Review, int, error) {
	args := m.Called(ctx, productID, limit, offset)
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// --- Mock Purchase Verifier ---

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyPurchase(ctx context.Context, productID, email string) (bool, error) {
	args := m.Called(ctx, productID, email)
	return args.Bool(0), args.Error(1)
}

// --- Mock Event Publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishReviewSubmitted(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockPublisher) PublishReviewModerated(ctx context.Context, id string, status domain.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(repo *mockReviewRepository, verifier *mockVerifier, events *mockPublisher) *ReviewService {
	return NewReviewService(repo, verifier, events, newTestLogger())
}

func validSubmitRequest() *domain.SubmitReviewRequest {
	return &domain.SubmitReviewRequest{
		ProductID:     "8844556677",
		ProductHandle: "Classic Leather Boot",
		Rating:        5,
		Title:         "Great boots",
		Body:          "Comfortable from day one.",
		AuthorName:    "Dana",
		AuthorEmail:   "dana@example.com",
	}
}

// --- Submit ---

func TestSubmit_StoresPendingWithVerifiedBuyer(t *testing.T) {
	repo := &mockReviewRepository{}
	verifier := &mockVerifier{}
	events := &mockPublisher{}
	svc := newTestService(repo, verifier, events)

	verifier.On("VerifyPurchase", mock.Anything, "8844556677", "dana@example.com").Return(true, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.Status == domain.StatusPending && rv.VerifiedBuyer && rv.ProductHandle == "classic-leather-boot"
	})).Return(nil)
	events.On("PublishReviewSubmitted", mock.Anything, mock.Anything).Return(nil)

	review, err := svc.Submit(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, review.Status)
	assert.True(t, review.VerifiedBuyer)
	repo.AssertExpectations(t)
	verifier.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestSubmit_InvalidRatingInsertsNothing(t *testing.T) {
	for _, rating := range []int{0, -1, 6, 100} {
		repo := &mockReviewRepository{}
		svc := newTestService(repo, &mockVerifier{}, &mockPublisher{})

		req := validSubmitRequest()
		req.Rating = rating

		_, err := svc.Submit(context.Background(), req)
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestSubmit_BodyTooLongInsertsNothing(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newTestService(repo, &mockVerifier{}, &mockPublisher{})

	req := validSubmitRequest()
	req.Body = strings.Repeat("a", 5001)

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_VerifierErrorDegradesToUnverified(t *testing.T) {
	repo := &mockReviewRepository{}
	verifier := &mockVerifier{}
	events := &mockPublisher{}
	svc := newTestService(repo, verifier, events)

	verifier.On("VerifyPurchase", mock.Anything, mock.Anything, mock.Anything).
		Return(false, errors.New("shopify unreachable"))
	repo.On("Create", mock.Anything, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.Status == domain.StatusPending && !rv.VerifiedBuyer
	})).Return(nil)
	events.On("PublishReviewSubmitted", mock.Anything, mock.Anything).Return(nil)

	review, err := svc.Submit(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	assert.False(t, review.VerifiedBuyer)
	repo.AssertExpectations(t)
}

func TestSubmit_EventPublishFailureIsNonFatal(t *testing.T) {
	repo := &mockReviewRepository{}
	verifier := &mockVerifier{}
	events := &mockPublisher{}
	svc := newTestService(repo, verifier, events)

	verifier.On("VerifyPurchase", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	events.On("PublishReviewSubmitted", mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable"))

	_, err := svc.Submit(context.Background(), validSubmitRequest())
	require.NoError(t, err)
}

func TestSubmit_StorageErrorPropagates(t *testing.T) {
	repo := &mockReviewRepository{}
	verifier := &mockVerifier{}
	svc := newTestService(repo, verifier, &mockPublisher{})

	verifier.On("VerifyPurchase", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := svc.Submit(context.Background(), validSubmitRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create review")
}

// --- ListApproved ---

func TestListApproved_ComputesTotalPages(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newTestService(repo, &mockVerifier{}, &mockPublisher{})

	repo.On("ListApproved", mock.Anything, "prod-1", 5, 5).
		Return([]domain.Review{{ProductID: "prod-1"}}, 12, nil)

	page, err := svc.ListApproved(context.Background(), "prod-1", pagination.Params{Page: 2, Limit: 5, Offset: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 12, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListApproved_EmptySetStillOnePage(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newTestService(repo, &mockVerifier{}, &mockPublisher{})

	repo.On("ListApproved", mock.Anything, "prod-1", 10, 0).
		Return([]domain.Review{}, 0, nil)

	page, err := svc.ListApproved(context.Background(), "prod-1", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Reviews)
}

func TestListApproved_MissingProductID(t *testing.T) {
	svc := newTestService(&mockReviewRepository{}, &mockVerifier{}, &mockPublisher{})

	_, err := svc.ListApproved(context.Background(), "", pagination.DefaultParams())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

// --- Verify ---

func TestVerify_SurfacesVerifierError(t *testing.T) {
	verifier := &mockVerifier{}
	svc := newTestService(&mockReviewRepository{}, verifier, &mockPublisher{})

	verifier.On("VerifyPurchase", mock.Anything, "prod-1", "dana@example.com").
		Return(false, errors.New("shopify unreachable"))

	_, err := svc.Verify(context.Background(), &domain.VerifyRequest{ProductID: "prod-1", Email: "dana@example.com"})
	require.Error(t, err)
}

func TestVerify_ReturnsVerifierResult(t *testing.T) {
	verifier := &mockVerifier{}
	svc := newTestService(&mockReviewRepository{}, verifier, &mockPublisher{})

	verifier.On("VerifyPurchase", mock.Anything, "prod-1", "dana@example.com").Return(true, nil)

	verified, err := svc.Verify(context.Background(), &domain.VerifyRequest{ProductID: "prod-1", Email: "dana@example.com"})
	require.NoError(t, err)
	assert.True(t, verified)
}

// --- AdminList ---

func TestAdminList_DefaultsToPendingWithLimit50(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newTestService(repo, &mockVerifier{}, &mockPublisher{})

	repo.On("ListByStatus", mock.Anything, domain.StatusPending, 50).
		Return([]domain.Review{}, nil)

	_, err := svc.AdminList(context.Background(), "", 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAdminList_ClampsLimit(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newTestService(repo, &mockVerifier{}, &mockPublisher{})

	repo.On("ListByStatus", mock.Anything, domain.StatusApproved, 200).
		Return([]domain.Review{}, nil)

	_, err := svc.AdminList(context.Background(), domain.StatusApproved, 5000)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAdminList_UnknownStatusRejected(t *testing.T) {
	svc := newTestService(&mockReviewRepository{}, &mockVerifier{}, &mockPublisher{})

	_, err := svc.AdminList(context.Background(), domain.Status("archived"), 10)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

// --- Moderate ---

func TestModerate_RejectsPendingAndUnknownStatus(t *testing.T) {
	repo := &mockReviewRepository{}
	svc := newTestService(repo, &mockVerifier{}, &mockPublisher{})

	for _, status := range []domain.Status{domain.StatusPending, "archived", ""} {
		err := svc.Moderate(context.Background(), &domain.ModerateReviewRequest{ID: "review-1", Status: status})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Status)
	}
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestModerate_ApprovePublishesEvent(t *testing.T) {
	repo := &mockReviewRepository{}
	events := &mockPublisher{}
	svc := newTestService(repo, &mockVerifier{}, events)

	repo.On("UpdateStatus", mock.Anything, "review-1", domain.StatusApproved).Return(nil)
	events.On("PublishReviewModerated", mock.Anything, "review-1", domain.StatusApproved).Return(nil)

	err := svc.Moderate(context.Background(), &domain.ModerateReviewRequest{ID: "review-1", Status: domain.StatusApproved})
	require.NoError(t, err)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestModerate_UnknownIDSucceeds(t *testing.T) {
	repo := &mockReviewRepository{}
	events := &mockPublisher{}
	svc := newTestService(repo, &mockVerifier{}, events)

	repo.On("UpdateStatus", mock.Anything, "missing-id", domain.StatusRejected).Return(nil)
	events.On("PublishReviewModerated", mock.Anything, "missing-id", domain.StatusRejected).Return(nil)

	err := svc.Moderate(context.Background(), &domain.ModerateReviewRequest{ID: "missing-id", Status: domain.StatusRejected})
	require.NoError(t, err)
}
