package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrCalculateDeliveryFeeQueryIsNotConstructed = errors.New(
		"CalculateDeliveryFeeQuery must be created via NewCalculateDeliveryFeeQuery constructor",
	)
)

// CalculateDeliveryFeeQuery previews the delivery fee for a destination. A
// nil baseFee selects the configured one.
type CalculateDeliveryFeeQuery struct {
	destination kernel.Location
	baseFee     *decimal.Decimal

	guard guard.ConstructorGuard
}

func NewCalculateDeliveryFeeQuery(latitude, longitude float64, baseFee *decimal.Decimal) (CalculateDeliveryFeeQuery, error) {
	destination, err := kernel.NewLocation(latitude, longitude)
	if err != nil {
		return CalculateDeliveryFeeQuery{}, err
	}
	if baseFee != nil && baseFee.IsNegative() {
		return CalculateDeliveryFeeQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"baseDeliveryFee", fmt.Errorf("%s is negative", baseFee))
	}
	return CalculateDeliveryFeeQuery{
		destination: destination,
		baseFee:     baseFee,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q CalculateDeliveryFeeQuery) Validate() error {
	return q.guard.Validate(ErrCalculateDeliveryFeeQueryIsNotConstructed)
}

// FeeCalculator prices a delivery to a destination.
type FeeCalculator interface {
	Calculate(ctx context.Context, destination kernel.Location, baseFee decimal.Decimal) (delivery.FeeBreakdown, error)
}

type CalculateDeliveryFeeQueryHandler struct {
	fees    FeeCalculator
	baseFee decimal.Decimal
}

func NewCalculateDeliveryFeeQueryHandler(fees FeeCalculator, baseFee decimal.Decimal) CalculateDeliveryFeeQueryHandler {
	return CalculateDeliveryFeeQueryHandler{fees: fees, baseFee: baseFee}
}

// Handle returns the breakdown rounded to cents, as it would be charged.
func (h CalculateDeliveryFeeQueryHandler) Handle(
	ctx context.Context,
	query CalculateDeliveryFeeQuery,
) (delivery.FeeBreakdown, error) {
	if err := query.Validate(); err != nil {
		return delivery.FeeBreakdown{}, err
	}

	baseFee := h.baseFee
	if query.baseFee != nil {
		baseFee = *query.baseFee
	}

	fee, err := h.fees.Calculate(ctx, query.destination, baseFee)
	if err != nil {
		return delivery.FeeBreakdown{}, err
	}

	fee.BaseFee = kernel.Round2(fee.BaseFee)
	fee.WeatherAdjustment = kernel.Round2(fee.WeatherAdjustment)
	fee.TotalAdjustment = kernel.Round2(fee.TotalAdjustment)
	fee.TotalFee = kernel.Round2(fee.TotalFee)

	return fee, nil
}
