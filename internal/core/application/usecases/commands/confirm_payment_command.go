package commands

import (
	"errors"

	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand carries a raw, not yet verified payment provider
// notification.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	payload   []byte
	signature string

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(payload []byte, signature string) (ConfirmPaymentCommand, error) {
	var errList []error
	if len(payload) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("payload"))
	}
	if signature == "" {
		errList = append(errList, errs.NewValueIsRequiredError("signature"))
	}
	if err := errors.Join(errList...); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		payload:   payload,
		signature: signature,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) Payload() []byte {
	return c.payload
}

func (c ConfirmPaymentCommand) Signature() string {
	return c.signature
}
