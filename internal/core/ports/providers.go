package ports

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
)

// WeatherProvider returns the current weather at a location.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, location kernel.Location) (delivery.Reading, error)
}

const (
	// PaymentCompletedEvent ends a checkout. The money may still be in
	// flight for delayed payment methods; see PaymentStatus.
	PaymentCompletedEvent = "checkout.session.completed"

	// PaymentAsyncSucceededEvent settles a delayed payment method.
	PaymentAsyncSucceededEvent = "checkout.session.async_payment_succeeded"

	PaymentStatusPaid = "paid"
)

// PaymentSessionRequest asks the provider for a hosted payment page.
type PaymentSessionRequest struct {
	OrderID       kernel.UUID
	Amount        decimal.Decimal
	Description   string
	CustomerEmail string
}

// PaymentSession is a created hosted payment page.
type PaymentSession struct {
	ID  string
	URL string
}

// PaymentEvent is a verified provider notification. OrderID is the raw
// metadata value and is empty when the session carried none.
type PaymentEvent struct {
	ID            string
	Type          string
	SessionID     string
	OrderID       string
	PaymentStatus string
}

// IsCheckoutEvent reports whether the event concerns a checkout session.
func (e PaymentEvent) IsCheckoutEvent() bool {
	return e.Type == PaymentCompletedEvent || e.Type == PaymentAsyncSucceededEvent
}

// Settled reports whether the money has been captured.
func (e PaymentEvent) Settled() bool {
	return e.IsCheckoutEvent() && e.PaymentStatus == PaymentStatusPaid
}

// PaymentGateway creates payment sessions and authenticates provider
// notifications.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req PaymentSessionRequest) (PaymentSession, error)

	// VerifyEvent checks the signature header against the raw payload and
	// decodes the event. Nothing in the payload may be trusted before this
	// succeeds.
	VerifyEvent(payload []byte, signature string) (PaymentEvent, error)
}

// GeocodeResult is one candidate match of a free-text address.
type GeocodeResult struct {
	DisplayName string
	Location    kernel.Location
}

// Geocoder resolves free-text addresses to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]GeocodeResult, error)
}

// ImageStore hosts menu images.
type ImageStore interface {
	// Upload stores an image and returns its public URL.
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)

	// Delete removes a previously uploaded image by its public URL.
	Delete(ctx context.Context, imageURL string) error
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues session tokens for authenticated users.
type TokenIssuer interface {
	Issue(identity kernel.Identity) (string, error)
}
