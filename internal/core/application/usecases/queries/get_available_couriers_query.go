package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrGetAvailableCouriersQueryIsNotConstructed = errors.New(
		"GetAvailableCouriersQuery must be created via NewGetAvailableCouriersQuery constructor",
	)
)

// GetAvailableCouriersQuery lists couriers who are online with an empty
// slot. When an order is given the list is ranked by distance to its
// destination, nearest first.
//
// Example:
//
//	query, err := NewGetAvailableCouriersQuery(identity, &orderID)
//	couriers, err := handler.Handle(ctx, query)
//	for _, c := range couriers {
//	    fmt.Printf("%s %.1f km\n", c.Name, *c.DistanceKm)
//	}
type GetAvailableCouriersQuery struct {
	actor   kernel.Identity
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAvailableCouriersQuery(actor kernel.Identity, orderID *kernel.UUID) (GetAvailableCouriersQuery, error) {
	if err := validateIdentity(actor); err != nil {
		return GetAvailableCouriersQuery{}, err
	}
	if !actor.IsStaff() {
		return GetAvailableCouriersQuery{}, ErrStaffRoleRequired
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return GetAvailableCouriersQuery{}, err
		}
	}
	return GetAvailableCouriersQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableCouriersQueryIsNotConstructed)
}
