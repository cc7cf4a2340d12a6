package services_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWeatherSource struct {
	mock.Mock
}

func (m *MockWeatherSource) CurrentWeather(ctx context.Context, location kernel.Location) (delivery.Reading, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(delivery.Reading), args.Error(1)
}

func TestDeliveryFeeCalculator_Calculate(t *testing.T) {
	ctx := t.Context()
	destination, _ := kernel.NewLocation(59.33, 18.07)

	t.Run("prices with the current weather", func(t *testing.T) {
		weather := &MockWeatherSource{}
		weather.On("CurrentWeather", ctx, destination).
			Return(delivery.Reading{Condition: delivery.Storm, TemperatureC: 12, WindSpeedKmh: 35}, nil).Once()
		calc, err := services.NewDeliveryFeeCalculator(weather, slog.Default())
		require.NoError(t, err)

		fee, err := calc.Calculate(ctx, destination, decimal.NewFromInt(5))

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(8).Equal(fee.WeatherAdjustment))
		assert.True(t, decimal.NewFromInt(13).Equal(fee.TotalFee))
		weather.AssertExpectations(t)
	})

	t.Run("falls back to the neutral reading when the weather source fails", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		weather := &MockWeatherSource{}
		weather.On("CurrentWeather", ctx, destination).
			Return(delivery.Reading{}, errors.New("connection refused")).Once()
		calc, err := services.NewDeliveryFeeCalculator(weather, logger)
		require.NoError(t, err)

		fee, err := calc.Calculate(ctx, destination, decimal.NewFromInt(5))

		require.NoError(t, err)
		assert.Equal(t, delivery.NeutralReading(), fee.Weather)
		assert.True(t, decimal.NewFromInt(5).Equal(fee.TotalFee))
		assert.Contains(t, logs.String(), "connection refused")
	})

	t.Run("rejects a negative base fee without calling the weather source", func(t *testing.T) {
		weather := &MockWeatherSource{}
		calc, err := services.NewDeliveryFeeCalculator(weather, slog.Default())
		require.NoError(t, err)

		_, err = calc.Calculate(ctx, destination, decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		weather.AssertNotCalled(t, "CurrentWeather", mock.Anything, mock.Anything)
	})

	t.Run("requires its collaborators", func(t *testing.T) {
		_, err := services.NewDeliveryFeeCalculator(nil, slog.Default())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
