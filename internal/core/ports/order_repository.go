// Package ports defines the contracts between the core and its adapters:
// repositories, the unit of work and the outbound providers.
package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateIfStatus persists changes only if the stored status still equals
	// expected. Returns errs.ErrConcurrentModification otherwise.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order by ID.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountCompletedByCustomer counts the customer's completed orders, the
	// authoritative input of the loyalty programme.
	CountCompletedByCustomer(ctx context.Context, customerID kernel.UUID) (int, error)
}
