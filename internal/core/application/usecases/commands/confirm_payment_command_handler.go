package commands

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
)

// PaymentOutcome reports what a payment notification did.
type PaymentOutcome string

const (
	// PaymentApplied means the order was marked paid.
	PaymentApplied PaymentOutcome = "applied"
	// PaymentAlreadyApplied means the order was already paid; nothing changed.
	PaymentAlreadyApplied PaymentOutcome = "already_applied"
	// PaymentPending means the checkout finished but the money has not
	// settled yet; a later async_payment_succeeded event will apply it.
	PaymentPending PaymentOutcome = "pending"
	// PaymentIgnored means the event is not a payment confirmation for any
	// order we can identify.
	PaymentIgnored PaymentOutcome = "ignored"
)

// ConfirmPaymentCommandHandler reconciles payment provider notifications. The
// signature is verified before the payload is read. Notifications are
// delivered at least once, so confirmation is idempotent: a replay finds the
// order already paid and changes nothing.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	payments   ports.PaymentGateway
	logger     *slog.Logger
}

func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	payments ports.PaymentGateway,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
		logger:     logger.With("component", "payment_reconciliation"),
	}
}

func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (PaymentOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	event, err := h.payments.VerifyEvent(cmd.Payload(), cmd.Signature())
	if err != nil {
		return "", err
	}

	if !event.IsCheckoutEvent() {
		h.logger.DebugContext(ctx, "ignoring payment event", "event_id", event.ID, "type", event.Type)
		return PaymentIgnored, nil
	}

	// The provider retries anything but a 2xx, and a session without our
	// metadata can never be matched to an order.
	orderID, err := kernel.ParseUUID("orderId", event.OrderID)
	if err != nil {
		h.logger.WarnContext(ctx, "payment event without a usable order id",
			"event_id", event.ID, "session_id", event.SessionID, "error", err)
		return PaymentIgnored, nil
	}

	if !event.Settled() {
		h.logger.InfoContext(ctx, "checkout completed, payment not settled",
			"order_id", orderID.String(), "event_id", event.ID, "payment_status", event.PaymentStatus)
		return PaymentPending, nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return "", err
	}

	if !o.MarkPaid() {
		h.logger.InfoContext(ctx, "payment already applied", "order_id", orderID.String(), "event_id", event.ID)
		return PaymentAlreadyApplied, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.logger.InfoContext(ctx, "payment applied", "order_id", orderID.String(), "event_id", event.ID)
	return PaymentApplied, nil
}
