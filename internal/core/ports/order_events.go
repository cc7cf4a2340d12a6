package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderEvent announces the committed state of an order after a change.
type OrderEvent struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	CourierID  *kernel.UUID
	Status     order.Status
	Paid       bool
	OccurredAt time.Time
}

func NewOrderEvent(o *order.Order) OrderEvent {
	return OrderEvent{
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		CourierID:  o.Courier(),
		Status:     o.Status(),
		Paid:       o.IsPaid(),
		OccurredAt: o.UpdatedAt(),
	}
}

// OrderEventPublisher delivers order events to interested consumers.
// Delivery is best-effort.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
