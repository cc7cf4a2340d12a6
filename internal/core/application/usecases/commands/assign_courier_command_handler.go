package commands

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"
)

// AssignCourierCommandHandler assigns a ready order to a courier.
//
// Concurrency: both rows are locked in a fixed order (order, then courier)
// inside one transaction, and both writes are compare-and-set on the state
// read under the lock: the order must still be ready and the courier's slot
// still empty. Two staff members racing to give one courier two orders, or
// an assignment racing the courier going offline, therefore end with exactly
// one winner and no partial state.
type AssignCourierCommandHandler struct {
	uowFactory DeliveryUoWFactory
	dispatcher services.OrderDispatcher
}

func NewAssignCourierCommandHandler(uowFactory DeliveryUoWFactory, dispatcher services.OrderDispatcher) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

func (h *AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireStaff(cmd.Actor()); err != nil {
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

	courier, err := userRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = h.dispatcher.Assign(o, courier, cmd.Actor().Role); err != nil {
		return err
	}

	if err = orderRepo.UpdateIfStatus(ctx, o, order.Ready); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return order.ErrWrongStatus
		}
		return err
	}

	if err = userRepo.UpdateIfTakenOrder(ctx, courier, nil); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return user.ErrCourierUnavailable
		}
		return err
	}

	return uow.Commit(ctx)
}
