package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyErrors(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "not found",
			err:      errs.NewObjectNotFoundError("orderId", "o-1"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: o-1",
		},
		{
			name:     "not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("courierId", "c-1", cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: courierId, ID is: c-1 (cause: connection reset)",
		},
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("email"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: email",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("orderStatus", errors.New(`"cooking" is not a status`)),
			sentinel: errs.ErrValueIsInvalid,
			message:  `value is invalid: orderStatus (cause: "cooking" is not a status)`,
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("latitude", 91, -90, 90),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: latitude is 91, min value is -90, max value is 90",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("quantity", 0, 1, 99, cause),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: quantity is 0, min value is 1, max value is 99 (cause: connection reset)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("phone"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: phone",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("customerId", cause),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: customerId (cause: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestValueIsOutOfRangeError_SanitizesNewlines(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("address", "Main St\n1", 0, 10)

	assert.Contains(t, err.Error(), "Main St 1")
	assert.NotContains(t, err.Error(), "\n")
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrPreconditionFailed)
		require.Error(t, errs.ErrUpstreamFailure)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "precondition failed", errs.ErrPreconditionFailed.Error())
		assert.Equal(t, "upstream failure", errs.ErrUpstreamFailure.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("userId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		forbiddenErr := errs.NewForbiddenError("not assigned to this order")
		require.ErrorIs(t, forbiddenErr, errs.ErrForbidden)

		upstreamErr := errs.NewUpstreamFailureError("payment provider", errors.New("timeout"))
		require.ErrorIs(t, upstreamErr, errs.ErrUpstreamFailure)
	})

	t.Run("wrapped domain sentinels keep their identity", func(t *testing.T) {
		paymentRequired := errs.NewPreconditionFailedError("payment required")
		wrapped := fmt.Errorf("update order: %w", paymentRequired)

		require.ErrorIs(t, wrapped, paymentRequired)
		require.ErrorIs(t, wrapped, errs.ErrPreconditionFailed)
		assert.Equal(t, "payment required", errs.Reason(wrapped))
	})
}

func TestPreconditionFailedError(t *testing.T) {
	t.Run("NewPreconditionFailedError", func(t *testing.T) {
		err := errs.NewPreconditionFailedError("order not in correct status")

		assert.Equal(t, "precondition failed: order not in correct status", err.Error())
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("NewPreconditionFailedErrorWithCause", func(t *testing.T) {
		cause := errors.New("row locked")
		err := errs.NewPreconditionFailedErrorWithCause("no available couriers", cause)

		assert.Equal(t, "precondition failed: no available couriers (cause: row locked)", err.Error())
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		require.ErrorIs(t, err, cause)
	})

	t.Run("concurrent modification is a precondition failure", func(t *testing.T) {
		require.ErrorIs(t, errs.ErrConcurrentModification, errs.ErrPreconditionFailed)
	})
}

func TestUnauthorizedError(t *testing.T) {
	err := errs.NewUnauthorizedErrorWithCause("invalid token", errors.New("expired"))

	assert.Equal(t, "unauthorized: invalid token (cause: expired)", err.Error())
	assert.Equal(t, errs.ErrUnauthorized, err.Unwrap())
	assert.Equal(t, "invalid token", errs.Reason(err))
}

func TestReason(t *testing.T) {
	t.Run("upstream failure hides the cause", func(t *testing.T) {
		err := errs.NewUpstreamFailureError("payment provider", errors.New("tls handshake timeout"))

		assert.Equal(t, "payment provider is unavailable", errs.Reason(err))
	})

	t.Run("validation errors use the full message", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("orderId")

		assert.Equal(t, "value is required: orderId", errs.Reason(err))
	})
}
