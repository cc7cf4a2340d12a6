package queries

import (
	"context"
	"errors"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrLoginQueryIsNotConstructed = errors.New(
		"LoginQuery must be created via NewLoginQuery constructor",
	)

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = errs.NewUnauthorizedError("invalid email or password")
)

// LoginQuery exchanges credentials for a session token.
type LoginQuery struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewLoginQuery(email, password string) (LoginQuery, error) {
	if strings.TrimSpace(email) == "" {
		return LoginQuery{}, errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return LoginQuery{}, errs.NewValueIsRequiredError("password")
	}
	return LoginQuery{email: email, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (q LoginQuery) Validate() error {
	return q.guard.Validate(ErrLoginQueryIsNotConstructed)
}

// Session is an issued token and the account it belongs to.
type Session struct {
	Token  string
	UserID kernel.UUID
	Name   string
	Role   kernel.Role
}

type LoginQueryHandler struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
}

func NewLoginQueryHandler(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
) LoginQueryHandler {
	return LoginQueryHandler{users: users, hasher: hasher, tokens: tokens}
}

func (h LoginQueryHandler) Handle(ctx context.Context, query LoginQuery) (Session, error) {
	if err := query.Validate(); err != nil {
		return Session{}, err
	}

	u, err := h.users.GetByEmail(ctx, query.email)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}

	if err = h.hasher.Compare(u.PasswordHash(), query.password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	identity, err := kernel.NewIdentity(u.ID(), u.Role())
	if err != nil {
		return Session{}, err
	}

	token, err := h.tokens.Issue(identity)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:  token,
		UserID: u.ID(),
		Name:   u.Name(),
		Role:   u.Role(),
	}, nil
}
