package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"foodorder/internal/pkg/errs"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusCode maps the error taxonomy onto HTTP.
func StatusCode(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUpstreamFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := StatusCode(err)

	message := http.StatusText(code)
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		message = fmt.Sprint(httpErr.Message)
	case code >= http.StatusInternalServerError && code != http.StatusBadGateway:
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("path", ctx.Path()), slog.Any("error", err))
	default:
		if code == http.StatusBadGateway {
			s.logger.WarnContext(ctx.Request().Context(), "upstream failure",
				slog.String("path", ctx.Path()), slog.Any("error", err))
		}
		// Joined validation errors are one per line.
		message = strings.ReplaceAll(errs.Reason(err), "\n", "; ")
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}
