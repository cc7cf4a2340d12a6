package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

// SetCourierAvailabilityCommand switches the calling courier online or offline.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courier   kernel.Identity
	available bool

	guard guard.ConstructorGuard
}

func NewSetCourierAvailabilityCommand(courier kernel.Identity, available bool) (SetCourierAvailabilityCommand, error) {
	if err := validateIdentity(courier); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	return SetCourierAvailabilityCommand{
		courier:   courier,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

func (c SetCourierAvailabilityCommand) Courier() kernel.Identity {
	return c.courier
}

func (c SetCourierAvailabilityCommand) Available() bool {
	return c.available
}
