package order

import (
	"errors"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

// Order represents one customer purchase. It is the aggregate root that
// manages the order lifecycle from checkout through delivery.
//
// Order follows these invariants:
//   - Must have a valid identifier, owning customer and delivery destination
//   - Must carry at least one line item
//   - Status only moves forward, one step at a time (see CanTransition)
//   - A courier is linked if and only if the status is Transportation or Completed
//   - Staff may not progress the order before it is paid
//
// Orders are never deleted; every mutation keeps the history append-only.
type Order struct {
	id               kernel.UUID
	customerID       kernel.UUID
	contact          Contact
	destination      kernel.Location
	items            []Item
	charges          Charges
	paid             bool
	status           Status
	courierID        *kernel.UUID
	paymentSessionID string
	createdAt        time.Time
	updatedAt        time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order at checkout: status Placed, unpaid, no courier.
//
// Example:
//
//	charges := order.CalculateCharges(items, taxRate, fee, tier, pct)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, contact, destination, items, charges)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	contact Contact,
	destination kernel.Location,
	items []Item,
	charges Charges,
) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:    Placed,
		charges:   charges,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomer(customerID),
		order.setContact(contact),
		order.setDestination(destination),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Snapshot carries every persisted field of an Order.
type Snapshot struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	Contact          Contact
	Destination      kernel.Location
	Items            []Item
	Charges          Charges
	Paid             bool
	Status           Status
	CourierID        *kernel.UUID
	PaymentSessionID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreOrder rebuilds an order loaded from storage. The courier/status
// invariant is re-checked so that a corrupted record never enters the domain.
func RestoreOrder(s Snapshot) (*Order, error) {
	order := &Order{
		contact:          s.Contact,
		charges:          s.Charges,
		paid:             s.Paid,
		paymentSessionID: s.PaymentSessionID,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
		guard:            guard.NewConstructorGuard(),
	}

	// Unset status is tolerated on load; MarkPaid defaults it to Placed.
	var statusErr error
	if s.Status != Unknown || s.CourierID != nil {
		statusErr = errors.Join(s.Status.Validate(), s.Status.ValidateCanHaveCourier(s.CourierID != nil))
	}

	if err := errors.Join(
		order.setID(s.ID),
		order.setCustomer(s.CustomerID),
		order.setDestination(s.Destination),
		order.setItems(s.Items),
		statusErr,
	); err != nil {
		return nil, err
	}

	order.status = s.Status
	if s.CourierID != nil {
		courierID := *s.CourierID
		order.courierID = &courierID
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) Contact() Contact {
	return o.contact
}

func (o *Order) Destination() kernel.Location {
	return o.destination
}

func (o *Order) Charges() Charges {
	return o.charges
}

func (o *Order) IsPaid() bool {
	return o.paid
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentSessionID() string {
	return o.paymentSessionID
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Courier returns the assigned courier's ID, or nil if none is assigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// IsOwnedBy reports whether the order belongs to the given customer.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// UpdateStatus is the generic staff status update. Checks run in order:
//  1. target is a known status other than Transportation or Completed
//  2. the order is paid
//  3. the move is a legal single forward step for the actor's role
//
// Nothing is mutated when any check fails.
func (o *Order) UpdateStatus(target Status, role kernel.Role) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target.RequiresDedicatedOperation() {
		return ErrDedicatedTransition
	}
	if !o.paid {
		return ErrPaymentRequired
	}
	if !CanTransition(o.status, target, role) {
		return ErrWrongStatus
	}

	o.status = target
	o.touch()
	return nil
}

// AssignCourier links a courier to a Ready order and moves it to
// Transportation. The courier side of the assignment (taking the slot) is the
// caller's responsibility and must be committed in the same unit of work.
func (o *Order) AssignCourier(courierID kernel.UUID, role kernel.Role) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := o.ValidateAssignCourier(role); err != nil {
		return err
	}

	o.courierID = &courierID
	o.status = Transportation
	o.touch()
	return nil
}

// ValidateAssignCourier checks, without side effects, that the order can be
// handed to a courier by an actor with the given role.
func (o *Order) ValidateAssignCourier(role kernel.Role) error {
	if !o.paid {
		return ErrPaymentRequired
	}
	if !CanTransition(o.status, Transportation, role) {
		return ErrWrongStatus
	}
	return nil
}

// Complete marks the order delivered. Only the assigned courier may complete
// it, and only while it is in Transportation.
func (o *Order) Complete(courierID kernel.UUID) error {
	if o.courierID == nil || !o.courierID.IsEqual(courierID) {
		return ErrNotAssigned
	}
	if !CanTransition(o.status, Completed, kernel.RoleCourier) {
		return ErrWrongStatus
	}

	o.status = Completed
	o.touch()
	return nil
}

// MarkPaid records a confirmed payment. The status is left untouched unless it
// is unset, in which case it becomes Placed. It reports whether anything
// changed, so replays of the same confirmation are no-ops.
func (o *Order) MarkPaid() bool {
	changed := false
	if !o.paid {
		o.paid = true
		changed = true
	}
	if o.status == Unknown {
		o.status = Placed
		changed = true
	}
	if changed {
		o.touch()
	}
	return changed
}

// AttachPaymentSession stores the hosted payment session identifier.
func (o *Order) AttachPaymentSession(sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return errs.NewValueIsRequiredError("paymentSessionId")
	}
	o.paymentSessionID = sessionID
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setContact(contact Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	o.contact = contact
	return nil
}

func (o *Order) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
