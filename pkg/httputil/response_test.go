package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Sugar-Kane/shopify-reviews-backend/pkg/errors"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]bool{"ok": true})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, true, decode(t, rec)["ok"])
}

func TestWriteError_AppErrorSurfacesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reviews", nil)

	WriteError(rec, req, apperrors.InvalidInput("rating must be between 1 and 5"), testLogger())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "rating must be between 1 and 5", decode(t, rec)["message"])
}

func TestWriteError_WrappedAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reviews", nil)

	err := apperrors.Wrap(apperrors.NotFound("review not found"), "moderate")
	WriteError(rec, req, err, testLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "review not found", decode(t, rec)["message"])
}

func TestWriteError_UnknownErrorIsGeneric500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reviews", nil)

	WriteError(rec, req, errors.New("pq: connection refused"), testLogger())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal error", decode(t, rec)["message"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestWriteValidationError_NamesFirstField(t *testing.T) {
	type req struct {
		ProductID string `validate:"required"`
		Email     string `validate:"required,email"`
	}

	err := validator.Validate(&req{})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteValidationError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "product_id is required", decode(t, rec)["message"])
}

func TestWriteValidationError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, errors.New("invalid JSON body"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON body", decode(t, rec)["message"])
}
