package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

// WeatherSource returns the current weather at a location.
type WeatherSource interface {
	CurrentWeather(ctx context.Context, location kernel.Location) (delivery.Reading, error)
}

// DeliveryFeeCalculator prices deliveries from the destination weather. A
// failing weather source never fails the calculation: the neutral reading is
// used instead and the failure is logged.
type DeliveryFeeCalculator struct {
	weather WeatherSource
	logger  *slog.Logger
}

func NewDeliveryFeeCalculator(weather WeatherSource, logger *slog.Logger) (*DeliveryFeeCalculator, error) {
	if weather == nil {
		return nil, errs.NewValueIsRequiredError("weather")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &DeliveryFeeCalculator{
		weather: weather,
		logger:  logger.With("component", "delivery_fee_calculator"),
	}, nil
}

// Calculate returns the fee breakdown for a destination. Only invalid input
// produces an error.
func (c *DeliveryFeeCalculator) Calculate(
	ctx context.Context,
	destination kernel.Location,
	baseFee decimal.Decimal,
) (delivery.FeeBreakdown, error) {
	if err := destination.Validate(); err != nil {
		return delivery.FeeBreakdown{}, err
	}
	if baseFee.IsNegative() {
		return delivery.FeeBreakdown{}, errs.NewValueIsInvalidErrorWithCause(
			"baseDeliveryFee", fmt.Errorf("%s is negative", baseFee))
	}

	reading, err := c.weather.CurrentWeather(ctx, destination)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return delivery.FeeBreakdown{}, err
		}
		c.logger.WarnContext(ctx, "weather lookup failed, using neutral reading",
			"destination", destination.String(), "error", err)
		reading = delivery.NeutralReading()
	}

	return delivery.CalculateFee(baseFee, reading), nil
}
