package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/Sugar-Kane/shopify-reviews-backend/pkg/errors"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/logger"
	"github.com/Sugar-Kane/shopify-reviews-backend/pkg/validator"
)

// Message is the JSON body used for all error responses.
type Message struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an error response based on the error type. Validation and
// AppError messages are surfaced to the caller; anything else becomes a
// generic 500 with the detail logged server-side only. It prefers the
// request-scoped logger from context over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Status != http.StatusInternalServerError {
		WriteJSON(w, appErr.Status, Message{Message: appErr.Message})
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "Internal error"
	if status == http.StatusBadRequest {
		message = err.Error()
	}

	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, Message{Message: message})
}

// WriteValidationError writes a 400 response naming the first failed field.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Message{Message: valErr.First()})
		return
	}

	WriteJSON(w, http.StatusBadRequest, Message{Message: err.Error()})
}
