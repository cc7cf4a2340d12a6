package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrEmailIsInvalid         = errs.NewValueIsInvalidError("email")
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("password")

	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("user must be created via NewUser constructor")

	// ErrNotACourier is returned when courier-only state is touched on another role.
	ErrNotACourier = errs.NewForbiddenError("courier role required")

	// ErrCourierUnavailable is returned when assigning to a courier who is
	// offline or already carries an order.
	ErrCourierUnavailable = ErrSlotOccupied
)

// User is a customer, staff or courier account. It is the aggregate root for
// credentials, role and the courier-only presence state.
//
// Business rules:
//   - User must have a valid UUID, a name, a well-formed unique email and a password hash
//   - Availability, location and the delivery slot exist for couriers only
//   - A courier carries at most one order at a time
//   - Only an available courier with an empty slot can take an order
//   - Going offline while carrying an order is allowed; it only blocks new assignments
//
// Example usage:
//
//	u, err := user.NewUser(kernel.NewUUID(), "Alice", "alice@example.com", hash, kernel.RoleCourier)
//	if err != nil {
//	    // Handle construction error
//	}
//	_ = u.SetAvailability(true)
type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	role         kernel.Role
	createdAt    time.Time

	// courier-only
	available          bool
	slot               DeliverySlot
	location           *kernel.Location
	lastLocationUpdate *time.Time

	guard guard.ConstructorGuard
}

// NewUser creates an account with the given role. Couriers start unavailable
// with an empty slot.
func NewUser(id kernel.UUID, name, email, passwordHash string, role kernel.Role) (*User, error) {
	u := &User{
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Snapshot carries every persisted field of a User.
type Snapshot struct {
	ID                 kernel.UUID
	Name               string
	Email              string
	PasswordHash       string
	Role               kernel.Role
	CreatedAt          time.Time
	Available          bool
	TakenOrder         *kernel.UUID
	Location           *kernel.Location
	LastLocationUpdate *time.Time
}

// RestoreUser rebuilds a user loaded from storage.
func RestoreUser(s Snapshot) (*User, error) {
	u := &User{
		createdAt:          s.CreatedAt,
		available:          s.Available,
		lastLocationUpdate: s.LastLocationUpdate,
		guard:              guard.NewConstructorGuard(),
	}

	slot, slotErr := RestoreDeliverySlot(s.TakenOrder)
	var locationErr error
	if s.Location != nil {
		locationErr = s.Location.Validate()
	}

	if err := errors.Join(
		u.setID(s.ID),
		u.setName(s.Name),
		u.setEmail(s.Email),
		u.setPasswordHash(s.PasswordHash),
		u.setRole(s.Role),
		slotErr,
		locationErr,
	); err != nil {
		return nil, err
	}

	u.slot = slot
	if s.Location != nil {
		location := *s.Location
		u.location = &location
	}

	return u, nil
}

// Validate ensures the User instance was created through a constructor.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() kernel.Role {
	return u.role
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) IsCourier() bool {
	return u.role == kernel.RoleCourier
}

func (u *User) IsAvailable() bool {
	return u.available
}

// TakenOrder returns the order the courier carries, or nil.
func (u *User) TakenOrder() *kernel.UUID {
	return u.slot.OrderID()
}

// Location returns the last reported courier position, or nil.
func (u *User) Location() *kernel.Location {
	return u.location
}

func (u *User) LastLocationUpdate() *time.Time {
	return u.lastLocationUpdate
}

// CanTakeOrder reports whether the courier is online with an empty slot.
func (u *User) CanTakeOrder() bool {
	return u.IsCourier() && u.available && u.slot.IsEmpty()
}

// TakeOrder puts the order into the courier's slot.
func (u *User) TakeOrder(orderID kernel.UUID) error {
	if !u.IsCourier() {
		return ErrNotACourier
	}
	if !u.available {
		return ErrCourierUnavailable
	}
	return u.slot.store(orderID)
}

// ReleaseOrder empties the slot after delivery. Only the carried order can be
// released.
func (u *User) ReleaseOrder(orderID kernel.UUID) error {
	if !u.IsCourier() {
		return ErrNotACourier
	}
	return u.slot.clear(orderID)
}

// SetAvailability switches the courier online or offline.
func (u *User) SetAvailability(available bool) error {
	if !u.IsCourier() {
		return ErrNotACourier
	}
	u.available = available
	return nil
}

// UpdateLocation records the courier's reported position.
func (u *User) UpdateLocation(location kernel.Location, at time.Time) error {
	if !u.IsCourier() {
		return ErrNotACourier
	}
	if err := location.Validate(); err != nil {
		return err
	}
	at = at.UTC()
	u.location = &location
	u.lastLocationUpdate = &at
	return nil
}

// IsStale reports whether an idle, available courier has not reported a
// location since cutoff.
func (u *User) IsStale(cutoff time.Time) bool {
	if !u.IsCourier() || !u.available || !u.slot.IsEmpty() {
		return false
	}
	return u.lastLocationUpdate == nil || u.lastLocationUpdate.Before(cutoff)
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return ErrEmailIsInvalid
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordHashIsRequired
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TakenOrderIs reports whether the courier's slot holds the given order.
func (u *User) TakenOrderIs(orderID kernel.UUID) bool {
	return u.slot.Holds(orderID)
}
