package commands

import (
	"context"
	"time"
)

type UpdateCourierLocationCommandHandler struct {
	uowFactory UserUoWFactory
	now        func() time.Time
}

func NewUpdateCourierLocationCommandHandler(uowFactory UserUoWFactory) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h *UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
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

	if err = courier.UpdateLocation(cmd.Location(), h.now()); err != nil {
		return err
	}

	if err = userRepo.Update(ctx, courier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
