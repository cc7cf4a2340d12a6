package commands

import (
	"context"
)

// SetCourierAvailabilityCommandHandler flips the courier's availability flag.
// A courier may go offline while still carrying an order; the slot is left
// untouched and the delivery can still be completed.
type SetCourierAvailabilityCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewSetCourierAvailabilityCommandHandler(uowFactory UserUoWFactory) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetCourierAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetCourierAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireCourier(cmd.Courier()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	courier, err := userRepo.GetForUpdate(ctx, cmd.Courier().UserID)
	if err != nil {
		return err
	}

	if err = courier.SetAvailability(cmd.Available()); err != nil {
		return err
	}

	if err = userRepo.Update(ctx, courier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
