package queries_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/delivery"
)

func TestCalculateDeliveryFeeQueryHandler_UsesConfiguredBaseFee(t *testing.T) {
	ctx := context.Background()
	baseFee := decimal.RequireFromString("4.999")
	storm := delivery.Reading{Condition: delivery.Storm, TemperatureC: 14, WindSpeedKmh: 45}

	fees := &MockFeeCalculator{}
	fees.On("Calculate", ctx, mock.Anything, baseFee).Return(delivery.CalculateFee(baseFee, storm), nil)

	query, err := queries.NewCalculateDeliveryFeeQuery(52.23, 21.01, nil)
	require.NoError(t, err)

	handler := queries.NewCalculateDeliveryFeeQueryHandler(fees, baseFee)
	fee, err := handler.Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "5", fee.BaseFee.String())
	assert.Equal(t, "8", fee.WeatherAdjustment.String())
	assert.Equal(t, "13", fee.TotalFee.String())
	assert.Equal(t, delivery.Storm, fee.Weather.Condition)
	fees.AssertExpectations(t)
}

func TestCalculateDeliveryFeeQueryHandler_ClientBaseFeeOverridesDefault(t *testing.T) {
	ctx := context.Background()
	configured := decimal.NewFromInt(5)
	requested := decimal.RequireFromString("7.25")

	fees := &MockFeeCalculator{}
	fees.On("Calculate", ctx, mock.Anything, requested).
		Return(delivery.CalculateFee(requested, delivery.NeutralReading()), nil)

	query, err := queries.NewCalculateDeliveryFeeQuery(52.23, 21.01, &requested)
	require.NoError(t, err)

	fee, err := queries.NewCalculateDeliveryFeeQueryHandler(fees, configured).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "7.25", fee.TotalFee.String())
	assert.True(t, fee.WeatherAdjustment.IsZero())
	fees.AssertExpectations(t)
}
