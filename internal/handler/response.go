package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/issuetrack/internal/domain"
)

// ErrorBody is the JSON shape of every failure response.
type ErrorBody struct {
	Error any `json:"error"`
}

// FieldError is the structured detail carried by validation failures.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HTTPErrorHandler is the global error handler for echo: it maps the error
// taxonomy onto 400/404/500 with an {"error": ...} body.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, detail := mapError(err)
	if jsonErr := c.JSON(status, ErrorBody{Error: detail}); jsonErr != nil {
		slog.Error("failed to send error response", "error", jsonErr)
	}
}

func mapError(err error) (int, any) {
	// echo's own HTTP errors (404 on unknown routes, 405, bind failures).
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, msg
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, FieldError{
			Field:   validationErr.Field,
			Message: validationErr.Message,
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "The request body is invalid"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	default:
		slog.Error("unhandled error", "error", err)
		return http.StatusInternalServerError, "Internal server error"
	}
}
