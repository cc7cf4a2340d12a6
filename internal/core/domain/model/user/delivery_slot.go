package user

import (
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

var (
	// ErrSlotOccupied is returned when a courier already carries an order.
	ErrSlotOccupied = errs.NewPreconditionFailedError("no available couriers")

	// ErrSlotHoldsAnotherOrder is returned when releasing an order the courier
	// does not carry.
	ErrSlotHoldsAnotherOrder = errs.NewForbiddenError("not assigned to this order")
)

// DeliverySlot is a courier's single delivery slot. It is either empty or
// holds exactly one order in transportation.
type DeliverySlot struct {
	orderID *kernel.UUID
}

// RestoreDeliverySlot rebuilds a slot from its persisted order reference.
func RestoreDeliverySlot(orderID *kernel.UUID) (DeliverySlot, error) {
	if orderID == nil {
		return DeliverySlot{}, nil
	}
	if err := orderID.Validate(); err != nil {
		return DeliverySlot{}, err
	}
	id := *orderID
	return DeliverySlot{orderID: &id}, nil
}

// OrderID returns the carried order, or nil when the slot is empty.
func (s DeliverySlot) OrderID() *kernel.UUID {
	return s.orderID
}

func (s DeliverySlot) IsEmpty() bool {
	return s.orderID == nil
}

// Holds reports whether the slot carries the given order.
func (s DeliverySlot) Holds(orderID kernel.UUID) bool {
	return s.orderID != nil && s.orderID.IsEqual(orderID)
}

func (s *DeliverySlot) store(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !s.IsEmpty() {
		return ErrSlotOccupied
	}
	s.orderID = &orderID
	return nil
}

func (s *DeliverySlot) clear(orderID kernel.UUID) error {
	if !s.Holds(orderID) {
		return ErrSlotHoldsAnotherOrder
	}
	s.orderID = nil
	return nil
}
