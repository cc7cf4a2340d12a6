package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

// MinPasswordLength is the shortest accepted account password.
const MinPasswordLength = 8

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
	ErrPasswordLength = errs.NewValueIsInvalidErrorWithCause(
		"password", fmt.Errorf("must be between %d characters and %d bytes long", MinPasswordLength, maxPasswordBytes))
)

// RegisterUserCommand creates an account. Self sign-up has no actor and may
// only create customers; an admin actor may create any role.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	actor    *kernel.Identity
	name     string
	email    string
	password string
	role     kernel.Role

	guard guard.ConstructorGuard
}

// NewSignUpCommand registers a customer account for an anonymous caller.
func NewSignUpCommand(name, email, password string) (RegisterUserCommand, error) {
	return newRegisterUserCommand(nil, name, email, password, kernel.RoleUser)
}

// NewRegisterUserCommand registers an account on behalf of actor.
func NewRegisterUserCommand(actor kernel.Identity, name, email, password, role string) (RegisterUserCommand, error) {
	parsed, roleErr := kernel.ParseRole(role)
	if err := errors.Join(validateIdentity(actor), roleErr); err != nil {
		return RegisterUserCommand{}, err
	}
	return newRegisterUserCommand(&actor, name, email, password, parsed)
}

func newRegisterUserCommand(
	actor *kernel.Identity,
	name, email, password string,
	role kernel.Role,
) (RegisterUserCommand, error) {
	var errList []error
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if strings.TrimSpace(email) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	if utf8.RuneCountInString(password) < MinPasswordLength || len(password) > maxPasswordBytes {
		errList = append(errList, ErrPasswordLength)
	}
	if err := errors.Join(errList...); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		actor:    actor,
		name:     name,
		email:    email,
		password: password,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// Actor is nil for self sign-up.
func (c RegisterUserCommand) Actor() *kernel.Identity {
	return c.actor
}

func (c RegisterUserCommand) Name() string {
	return c.name
}

func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c RegisterUserCommand) Password() string {
	return c.password
}

func (c RegisterUserCommand) Role() kernel.Role {
	return c.role
}
