package http

import (
	"strings"

	"github.com/labstack/echo/v4"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

const identityKey = "identity"

var ErrMissingSession = errs.NewUnauthorizedError("authentication required")

// Authenticate requires a bearer token and stores the caller's identity in the
// request context. Role checks are left to the use cases.
func (s *Server) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return s.fail(ctx, ErrMissingSession)
		}

		identity, err := s.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			return s.fail(ctx, err)
		}

		ctx.Set(identityKey, identity)
		return next(ctx)
	}
}

func identityFrom(ctx echo.Context) (kernel.Identity, error) {
	identity, ok := ctx.Get(identityKey).(kernel.Identity)
	if !ok {
		return kernel.Identity{}, ErrMissingSession
	}
	return identity, nil
}
