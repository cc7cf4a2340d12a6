package order

import (
	"errors"

	"foodorder/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder constructor")

	// ErrPaymentRequired rejects staff progression of an unpaid order.
	ErrPaymentRequired = errs.NewPreconditionFailedError("payment required")

	// ErrWrongStatus rejects a transition that is backward, skips a state or
	// starts from the wrong status.
	ErrWrongStatus = errs.NewPreconditionFailedError("order not in correct status")

	// ErrNotAssigned rejects completion by anyone but the assigned courier.
	ErrNotAssigned = errs.NewForbiddenError("not assigned to this order")

	// ErrDedicatedTransition rejects a generic update towards Transportation or
	// Completed, which have their own operations.
	ErrDedicatedTransition = errs.NewValueIsInvalidErrorWithCause("orderStatus",
		errors.New("transportation and completed are set by courier assignment and completion"))
)
