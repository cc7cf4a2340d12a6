package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery lists every order that is not completed yet. It is the
// staff dashboard view used to move orders through the kitchen and pick
// couriers.
//
// Example:
//
//	query, err := NewGetActiveOrdersQuery(identity)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetActiveOrdersQuery struct {
	actor kernel.Identity

	guard guard.ConstructorGuard
}

func NewGetActiveOrdersQuery(actor kernel.Identity) (GetActiveOrdersQuery, error) {
	if err := validateIdentity(actor); err != nil {
		return GetActiveOrdersQuery{}, err
	}
	if !actor.IsStaff() {
		return GetActiveOrdersQuery{}, ErrStaffRoleRequired
	}
	return GetActiveOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}
