package commands

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler completes an order and frees the courier's
// slot in one transaction, with the same lock order and compare-and-set
// discipline as assignment.
type CompleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	dispatcher services.OrderDispatcher
}

func NewCompleteDeliveryCommandHandler(uowFactory DeliveryUoWFactory, dispatcher services.OrderDispatcher) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	orderRepo := uow.OrderRepository()
	userRepo := uow.UserRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	courier, err := userRepo.GetForUpdate(ctx, cmd.Courier().UserID)
	if err != nil {
		return err
	}

	if err = h.dispatcher.Complete(o, courier, cmd.Courier().UserID); err != nil {
		return err
	}

	if err = orderRepo.UpdateIfStatus(ctx, o, order.Transportation); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return order.ErrWrongStatus
		}
		return err
	}

	orderID := o.ID()
	if err = userRepo.UpdateIfTakenOrder(ctx, courier, &orderID); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return order.ErrNotAssigned
		}
		return err
	}

	return uow.Commit(ctx)
}
