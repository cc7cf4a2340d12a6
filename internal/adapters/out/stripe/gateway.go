// Package stripe implements the payment gateway with Stripe Checkout.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// OrderIDMetadataKey carries the order id through the session metadata.
const OrderIDMetadataKey = "orderId"

var ErrInvalidSignature = errs.NewUnauthorizedError("invalid webhook signature")

type Config struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Currency      string
}

// Gateway implements ports.PaymentGateway.
type Gateway struct {
	sessions session.Client
	cfg      Config
}

// NewGateway builds a gateway. A nil backend selects Stripe's public API.
func NewGateway(cfg Config, backend stripego.Backend) (*Gateway, error) {
	if cfg.SecretKey == "" {
		return nil, errs.NewValueIsRequiredError("stripe secret key")
	}
	if cfg.WebhookSecret == "" {
		return nil, errs.NewValueIsRequiredError("stripe webhook secret")
	}
	if cfg.SuccessURL == "" || cfg.CancelURL == "" {
		return nil, errs.NewValueIsRequiredError("stripe redirect urls")
	}
	if cfg.Currency == "" {
		cfg.Currency = string(stripego.CurrencyUSD)
	}
	if backend == nil {
		backend = stripego.GetBackend(stripego.APIBackend)
	}

	return &Gateway{
		sessions: session.Client{B: backend, Key: cfg.SecretKey},
		cfg:      cfg,
	}, nil
}

func (g *Gateway) CreateSession(ctx context.Context, req ports.PaymentSessionRequest) (ports.PaymentSession, error) {
	if !req.Amount.IsPositive() {
		return ports.PaymentSession{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is not positive", req.Amount))
	}
	orderID := req.OrderID.String()

	params := &stripego.CheckoutSessionParams{
		Mode:              stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL:        stripego.String(expand(g.cfg.SuccessURL, orderID)),
		CancelURL:         stripego.String(expand(g.cfg.CancelURL, orderID)),
		ClientReferenceID: stripego.String(orderID),
		LineItems: []*stripego.CheckoutSessionLineItemParams{{
			Quantity: stripego.Int64(1),
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripego.String(g.cfg.Currency),
				UnitAmount: stripego.Int64(req.Amount.Shift(2).Round(0).IntPart()),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(req.Description),
				},
			},
		}},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripego.String(req.CustomerEmail)
	}
	params.AddMetadata(OrderIDMetadataKey, orderID)
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return ports.PaymentSession{}, errs.NewUpstreamFailureError("payment provider", err)
	}

	return ports.PaymentSession{ID: s.ID, URL: s.URL}, nil
}

func (g *Gateway) VerifyEvent(payload []byte, signature string) (ports.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return ports.PaymentEvent{}, errs.NewUnauthorizedErrorWithCause(ErrInvalidSignature.Reason, err)
	}

	result := ports.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if !result.IsCheckoutEvent() || event.Data == nil {
		return result, nil
	}

	var s stripego.CheckoutSession
	if err = json.Unmarshal(event.Data.Raw, &s); err != nil {
		return ports.PaymentEvent{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	result.SessionID = s.ID
	result.OrderID = s.Metadata[OrderIDMetadataKey]
	result.PaymentStatus = string(s.PaymentStatus)

	return result, nil
}

// expand substitutes {orderId} in a configured redirect URL.
func expand(url, orderID string) string {
	return strings.ReplaceAll(url, "{orderId}", orderID)
}
