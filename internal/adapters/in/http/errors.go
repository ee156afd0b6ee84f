package http

import (
	"errors"
	"net/http"

	"station/internal/core/domain/model/fleet"
	"station/internal/core/domain/services"
	"station/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// classify maps a use case error to its HTTP status. Persistence failures are
// the only retryable class.
func classify(err error) (int, bool) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, false
	case errors.Is(err, errs.ErrPersistence):
		return http.StatusServiceUnavailable, true
	case errors.Is(err, fleet.ErrDriverNotAssignable),
		errors.Is(err, fleet.ErrTruckNotAssignable),
		errors.Is(err, services.ErrFleetBindingMismatch):
		return http.StatusConflict, false
	case errs.IsValidation(err):
		return http.StatusBadRequest, false
	default:
		return http.StatusInternalServerError, false
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code, retryable := classify(err)

	message := err.Error()
	switch code {
	case http.StatusServiceUnavailable:
		message = "Storage is temporarily unavailable, please retry"
	case http.StatusInternalServerError:
		message = "Internal server error"
	}

	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}

	return ctx.JSON(code, Error{Code: code, Message: message, Retryable: retryable})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// handleHTTPError renders errors raised by echo and middleware in the Error shape.
func (s *Server) handleHTTPError(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = s.fail(ctx, err)
		return
	}

	message := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		message = m
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(he.Code)
		return
	}
	_ = ctx.JSON(he.Code, Error{Code: he.Code, Message: message})
}
