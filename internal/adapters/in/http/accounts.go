package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
)

// SignUp handles POST /auth/signup - creates a customer account.
func (s *Server) SignUp(ctx echo.Context) error {
	var req SignUpRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}

	cmd, err := commands.NewSignUpCommand(req.Name, req.Email, req.Password)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// RegisterUser handles POST /users - an admin creates a staff or courier account.
func (s *Server) RegisterUser(ctx echo.Context) error {
	actor, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req RegisterUserRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}

	cmd, err := commands.NewRegisterUserCommand(actor, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// Login handles POST /auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}

	query, err := queries.NewLoginQuery(req.Email, req.Password)
	if err != nil {
		return s.fail(ctx, err)
	}

	session, err := s.handlers.Login.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SessionResponse{
		Token:  session.Token,
		UserID: session.UserID.String(),
		Name:   session.Name,
		Role:   session.Role.String(),
	})
}
