package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand records the calling courier's position.
type UpdateCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courier  kernel.Identity
	location kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateCourierLocationCommand(courier kernel.Identity, location kernel.Location) (UpdateCourierLocationCommand, error) {
	if err := errors.Join(validateIdentity(courier), location.Validate()); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return UpdateCourierLocationCommand{
		courier:  courier,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

func (c UpdateCourierLocationCommand) Courier() kernel.Identity {
	return c.courier
}

func (c UpdateCourierLocationCommand) Location() kernel.Location {
	return c.location
}
