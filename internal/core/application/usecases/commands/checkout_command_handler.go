package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/loyalty"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// ErrLoyaltyDiscountTooHigh rejects a client discount above the one the
// customer's order history earns.
var ErrLoyaltyDiscountTooHigh = errs.NewValueIsInvalidErrorWithCause(
	"loyaltyDiscountPercentage", errors.New("exceeds the discount of your loyalty tier"))

// FeeCalculator prices a delivery to a destination.
type FeeCalculator interface {
	Calculate(ctx context.Context, destination kernel.Location, baseFee decimal.Decimal) (delivery.FeeBreakdown, error)
}

// CheckoutPricing holds the configured checkout rates.
type CheckoutPricing struct {
	TaxRate         decimal.Decimal
	BaseDeliveryFee decimal.Decimal
}

// CheckoutResult is what the customer needs to pay for a placed order.
type CheckoutResult struct {
	OrderID    kernel.UUID
	Charges    order.Charges
	Loyalty    loyalty.Status
	PaymentURL string
}

// CheckoutCommandHandler places orders. Items are priced from the menu, the
// loyalty discount is recomputed from the order history, and a hosted payment
// session is opened before anything is stored: a payment provider failure
// leaves no order behind.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	fees       FeeCalculator
	payments   ports.PaymentGateway
	pricing    CheckoutPricing
}

func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	fees FeeCalculator,
	payments ports.PaymentGateway,
	pricing CheckoutPricing,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		fees:       fees,
		payments:   payments,
		pricing:    pricing,
	}
}

func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	uow := h.uowFactory.Create()

	items, err := h.resolveItems(ctx, uow.MenuRepository(), cmd.Lines())
	if err != nil {
		return CheckoutResult{}, err
	}

	completed, err := uow.OrderRepository().CountCompletedByCustomer(ctx, cmd.Customer().UserID)
	if err != nil {
		return CheckoutResult{}, err
	}
	status := loyalty.CalculateStatus(completed)

	discountPct := status.DiscountPercentage
	if requested := cmd.LoyaltyDiscountPercentage(); requested != nil {
		if *requested > status.DiscountPercentage {
			return CheckoutResult{}, ErrLoyaltyDiscountTooHigh
		}
		discountPct = *requested
	}

	fee, err := h.fees.Calculate(ctx, cmd.Destination(), h.pricing.BaseDeliveryFee)
	if err != nil {
		return CheckoutResult{}, err
	}

	charges := order.CalculateCharges(items, h.pricing.TaxRate, fee, status.TierName(), discountPct)
	o, err := order.NewOrder(kernel.NewUUID(), cmd.Customer().UserID, cmd.Contact(), cmd.Destination(), items, charges)
	if err != nil {
		return CheckoutResult{}, err
	}

	session, err := h.payments.CreateSession(ctx, ports.PaymentSessionRequest{
		OrderID:       o.ID(),
		Amount:        kernel.Round2(charges.Total),
		Description:   fmt.Sprintf("Order %s", o.ID()),
		CustomerEmail: cmd.Contact().Email,
	})
	if err != nil {
		if errors.Is(err, errs.ErrUpstreamFailure) {
			return CheckoutResult{}, err
		}
		return CheckoutResult{}, errs.NewUpstreamFailureError("payment provider", err)
	}
	if err = o.AttachPaymentSession(session.ID); err != nil {
		return CheckoutResult{}, err
	}

	if err = uow.Begin(ctx); err != nil {
		return CheckoutResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CheckoutResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CheckoutResult{}, err
	}

	return CheckoutResult{
		OrderID:    o.ID(),
		Charges:    charges.Rounded(),
		Loyalty:    status,
		PaymentURL: session.URL,
	}, nil
}

// resolveItems prices every cart line from the menu.
func (h *CheckoutCommandHandler) resolveItems(
	ctx context.Context,
	menuRepo ports.MenuRepository,
	lines []CartLine,
) ([]order.Item, error) {
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	products, err := menuRepo.GetItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(lines))
	for i, line := range lines {
		product, ok := products[line.ProductID.String()]
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].productId", i), fmt.Errorf("product %s is not on the menu", line.ProductID))
		}

		price, err := product.UnitPrice(line.Size)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(product.ID(), product.Name(), line.Size, line.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
