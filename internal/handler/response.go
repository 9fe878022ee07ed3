package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"scireda/backend/internal/logger"
	"scireda/backend/internal/service"
)

type errorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// writeServiceError maps service errors to HTTP responses. Missing and
// foreign resources both answer 404 so existence is never confirmed to
// non-owners.
func writeServiceError(c echo.Context, err error) error {
	var validation *service.ValidationError
	var blocked *service.DeleteBlockedError
	switch {
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validation.Message, Field: validation.Field})
	case errors.Is(err, service.ErrMismatchedNetwork):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "parent folder belongs to a different network", Field: "parentId"})
	case errors.Is(err, service.ErrParentNotFound):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "parent folder not found", Field: "parentId"})
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.As(err, &blocked):
		return c.JSON(http.StatusConflict, errorResponse{Error: blocked.Error(), Reason: string(blocked.Reason)})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: "email or username already taken"})
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	default:
		logger.Error("request failed", "module", "handler", "action", "request", "resource", "http", "result", "failed", "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// badRequest answers 400; an empty field is omitted from the body.
func badRequest(c echo.Context, field, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: message, Field: field})
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
