package commands

import (
	"errors"
	"fmt"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrCartIsEmpty = errs.NewValueIsRequiredError("items")
)

// CartLine is one requested product in a checkout. Name and price are taken
// from the menu, never from the client.
type CartLine struct {
	ProductID kernel.UUID
	Size      string
	Quantity  int
}

// CheckoutCommand places an order for the calling customer.
//
// Example:
//
//	cmd, err := NewCheckoutCommand(identity, contact, destination, lines, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
//	// redirect the customer to result.PaymentURL
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	customer    kernel.Identity
	contact     order.Contact
	destination kernel.Location
	lines       []CartLine
	loyaltyPct  *int

	guard guard.ConstructorGuard
}

// NewCheckoutCommand validates the cart and contact data. loyaltyPct is the
// client-displayed discount percentage, or nil when the client sent none.
func NewCheckoutCommand(
	customer kernel.Identity,
	contact order.Contact,
	destination kernel.Location,
	lines []CartLine,
	loyaltyPct *int,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateIdentity(customer),
		cmd.setContact(contact),
		cmd.setDestination(destination),
		cmd.setLines(lines),
		cmd.setLoyaltyPct(loyaltyPct),
	); err != nil {
		return CheckoutCommand{}, err
	}

	cmd.customer = customer
	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) Customer() kernel.Identity {
	return c.customer
}

func (c CheckoutCommand) Contact() order.Contact {
	return c.contact
}

func (c CheckoutCommand) Destination() kernel.Location {
	return c.destination
}

func (c CheckoutCommand) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// LoyaltyDiscountPercentage returns the client-submitted percentage, or nil.
func (c CheckoutCommand) LoyaltyDiscountPercentage() *int {
	return c.loyaltyPct
}

func (c *CheckoutCommand) setContact(contact order.Contact) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Email = strings.TrimSpace(contact.Email)
	contact.Address = strings.TrimSpace(contact.Address)
	if err := contact.Validate(); err != nil {
		return err
	}
	c.contact = contact
	return nil
}

func (c *CheckoutCommand) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	c.destination = destination
	return nil
}

func (c *CheckoutCommand) setLines(lines []CartLine) error {
	if len(lines) == 0 {
		return ErrCartIsEmpty
	}
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].productId", i), err)
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i), fmt.Errorf("%d is not greater than 0", line.Quantity))
		}
	}
	c.lines = make([]CartLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CheckoutCommand) setLoyaltyPct(pct *int) error {
	if pct == nil {
		return nil
	}
	if *pct < 0 || *pct > 100 {
		return errs.NewValueIsOutOfRangeError("loyaltyDiscountPercentage", *pct, 0, 100)
	}
	value := *pct
	c.loyaltyPct = &value
	return nil
}
