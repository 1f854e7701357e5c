package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/services"
)

// errorResponse is the JSON body rendered for every handled error.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// CustomErrorHandler maps domain errors to HTTP responses: validation errors
// to 400 with the offending field, referential conflicts to 409, ownership
// misses to 404. Everything else becomes a 500 without leaking internals.
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := errorResponse{Error: "something went wrong, please try again later"}

	var validationErr *ledger.ValidationError
	var notFoundErr *services.NotFoundError
	var integrityErr *services.ReferentialIntegrityError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		code = http.StatusBadRequest
		body = errorResponse{Error: validationErr.Message, Field: validationErr.Field}
	case errors.As(err, &notFoundErr):
		code = http.StatusNotFound
		body = errorResponse{Error: notFoundErr.Error()}
	case errors.As(err, &integrityErr):
		code = http.StatusConflict
		body = errorResponse{Error: integrityErr.Error()}
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			body = errorResponse{Error: msg}
		} else {
			body = errorResponse{Error: http.StatusText(code)}
		}
	default:
		slog.Error("Unhandled error", "path", c.Request().URL.Path, "error", err)
	}

	if writeErr := c.JSON(code, body); writeErr != nil {
		slog.Error("Failed to write error response", "error", writeErr)
	}
}
