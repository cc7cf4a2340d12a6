package order

import (
	"fmt"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// Status represents the delivery-pipeline stage of an order. It is independent
// of payment state, which is tracked by the order's paid flag.
//
// State transitions (forward only, no skipping):
//
//	Placed ──> Processing ──> Ready ──> Transportation ──> Completed
//	   staff          staff      courier        assigned
//	                          assignment         courier
//
// Placed, Processing and Ready are moved by staff through the generic status
// update. Transportation is entered only through courier assignment and
// Completed only through the assigned courier's completion.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status of an order created at checkout.
	Placed

	// Processing indicates the kitchen is preparing the order.
	Processing

	// Ready indicates the order waits for a courier.
	Ready

	// Transportation indicates a courier carries the order.
	Transportation

	// Completed indicates the order has been delivered.
	// This is a final state with no further transitions allowed.
	Completed
)

// legacyPending is the status name older records carry for Placed.
const legacyPending = "pending"

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Placed:         "placed",
		Processing:     "processing",
		Ready:          "ready",
		Transportation: "transportation",
		Completed:      "completed",
	}
}

// ParseStatus converts a persisted or client-supplied status name into a
// Status. Names are case-insensitive; the deprecated "pending" is read as
// Placed.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == legacyPending {
		return Placed, nil
	}

	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"orderStatus", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the five lifecycle states.
func (s Status) Validate() error {
	if s < Placed || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "unknown" for
// invalid values. It is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Completed
}

// RequiresDedicatedOperation reports whether s can only be entered through
// courier assignment or completion, never through a generic status update.
func (s Status) RequiresDedicatedOperation() bool {
	return s == Transportation || s == Completed
}

type transition struct {
	from Status
	to   Status
}

// getTransitions is the single rule table of the lifecycle. Each legal
// forward step maps to the predicate deciding which roles may trigger it.
func getTransitions() map[transition]func(kernel.Role) bool {
	staff := func(r kernel.Role) bool { return r.IsStaff() }
	courier := func(r kernel.Role) bool { return r == kernel.RoleCourier }

	return map[transition]func(kernel.Role) bool{
		{Placed, Processing}:        staff,
		{Processing, Ready}:         staff,
		{Ready, Transportation}:     staff,
		{Transportation, Completed}: courier,
	}
}

// CanTransition reports whether an actor with the given role may move an order
// from one status to another. Backward moves, skipped states and self
// transitions are never allowed. Payment and courier preconditions are
// checked by the Order aggregate on top of this table.
func CanTransition(from, to Status, role kernel.Role) bool {
	allowed, ok := getTransitions()[transition{from: from, to: to}]
	return ok && allowed(role)
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment: a courier is linked if and only if the order is in
// Transportation or Completed.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && !s.RequiresDedicatedOperation() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}

	if !courier && s.RequiresDedicatedOperation() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()),
		)
	}

	return nil
}
