package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand is the assigned courier's confirmation of delivery.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	courier kernel.Identity
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(courier kernel.Identity, orderID kernel.UUID) (CompleteDeliveryCommand, error) {
	if err := errors.Join(validateIdentity(courier), orderID.Validate()); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		courier: courier,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) Courier() kernel.Identity {
	return c.courier
}

func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}
