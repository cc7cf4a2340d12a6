package delivery

import "github.com/shopspring/decimal"

// HighWindThresholdKmh is the wind speed above which the wind surcharge applies.
const HighWindThresholdKmh = 30.0

var (
	rainSurcharge  = decimal.NewFromInt(2)
	snowSurcharge  = decimal.NewFromInt(4)
	stormSurcharge = decimal.NewFromInt(6)
	windSurcharge  = decimal.NewFromInt(2)
)

// FeeBreakdown itemizes a delivery charge. Amounts are unrounded; callers
// round at the persist or display boundary.
type FeeBreakdown struct {
	BaseFee           decimal.Decimal
	WeatherAdjustment decimal.Decimal
	TotalAdjustment   decimal.Decimal
	TotalFee          decimal.Decimal
	Weather           Reading
}

// WeatherAdjustment returns the surcharge for a reading. Condition and wind
// surcharges are additive.
func WeatherAdjustment(r Reading) decimal.Decimal {
	adjustment := decimal.Zero

	switch r.Condition {
	case Rain:
		adjustment = adjustment.Add(rainSurcharge)
	case Snow:
		adjustment = adjustment.Add(snowSurcharge)
	case Storm:
		adjustment = adjustment.Add(stormSurcharge)
	case Clear:
	}

	if r.WindSpeedKmh > HighWindThresholdKmh {
		adjustment = adjustment.Add(windSurcharge)
	}

	return adjustment
}

// CalculateFee prices a delivery from a base fee and the destination weather.
func CalculateFee(baseFee decimal.Decimal, r Reading) FeeBreakdown {
	adjustment := WeatherAdjustment(r)

	return FeeBreakdown{
		BaseFee:           baseFee,
		WeatherAdjustment: adjustment,
		TotalAdjustment:   adjustment,
		TotalFee:          baseFee.Add(adjustment),
		Weather:           r,
	}
}
