package services

import (
	"cmp"
	"slices"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/user"
	"foodorder/internal/pkg/errs"
)

// OrderDispatcher is a domain service that moves orders on and off a courier's
// delivery slot. Assignment and completion change two aggregates, the order
// and the courier; the dispatcher checks every precondition on both before
// mutating either, so a rejected call leaves both untouched.
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	if err := dispatcher.Assign(o, courier, identity.Role); err != nil {
//	    return err
//	}
//	// persist o and courier in the same unit of work
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Assign hands a ready order to a courier: the order enters Transportation
// with the courier linked and the courier's slot holds the order.
//
// Checks, in order:
//   - the order is paid and Ready, and the actor is staff
//   - the target account is a courier
//   - the courier is available and its slot is empty, regardless of what the
//     availability flag alone says
func (d OrderDispatcher) Assign(o *order.Order, courier *user.User, role kernel.Role) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := courier.Validate(); err != nil {
		return err
	}

	if err := o.ValidateAssignCourier(role); err != nil {
		return err
	}
	if !courier.IsCourier() {
		return errs.NewObjectNotFoundError("courierId", courier.ID())
	}
	if !courier.CanTakeOrder() {
		return user.ErrCourierUnavailable
	}

	if err := courier.TakeOrder(o.ID()); err != nil {
		return err
	}
	return o.AssignCourier(courier.ID(), role)
}

// Complete closes a delivery: the order becomes Completed and the courier's
// slot is emptied. Only the courier carrying the order may complete it.
func (d OrderDispatcher) Complete(o *order.Order, courier *user.User, callerID kernel.UUID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := courier.Validate(); err != nil {
		return err
	}

	if !courier.ID().IsEqual(callerID) || !courier.IsCourier() {
		return order.ErrNotAssigned
	}
	if o.Courier() == nil || !o.Courier().IsEqual(callerID) {
		return order.ErrNotAssigned
	}
	if o.Status() != order.Transportation {
		return order.ErrWrongStatus
	}
	if !courier.TakenOrderIs(o.ID()) {
		return order.ErrNotAssigned
	}

	if err := o.Complete(callerID); err != nil {
		return err
	}
	return courier.ReleaseOrder(o.ID())
}

// RankedCourier is a free courier and its distance to a destination. Distance
// is nil when the courier has never reported a location.
type RankedCourier struct {
	Courier    *user.User
	DistanceKm *float64
}

// RankCouriers keeps the couriers that can take an order and sorts them by
// distance to destination, nearest first. Couriers without a known location
// come last, in input order.
func (d OrderDispatcher) RankCouriers(destination kernel.Location, couriers []*user.User) ([]RankedCourier, error) {
	ranked := make([]RankedCourier, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.CanTakeOrder() {
			continue
		}

		rc := RankedCourier{Courier: c}
		if c.Location() != nil {
			distance, err := c.Location().DistanceKm(destination)
			if err != nil {
				return nil, err
			}
			rc.DistanceKm = &distance
		}
		ranked = append(ranked, rc)
	}

	slices.SortStableFunc(ranked, func(a, b RankedCourier) int {
		switch {
		case a.DistanceKm == nil && b.DistanceKm == nil:
			return 0
		case a.DistanceKm == nil:
			return 1
		case b.DistanceKm == nil:
			return -1
		default:
			return cmp.Compare(*a.DistanceKm, *b.DistanceKm)
		}
	})

	return ranked, nil
}
