package delivery

import "fmt"

// Condition is the internal weather classification used for pricing.
type Condition string

const (
	Clear Condition = "clear"
	Rain  Condition = "rain"
	Snow  Condition = "snow"
	Storm Condition = "storm"
)

// Neutral reading used whenever the weather provider cannot be reached.
const (
	NeutralTemperatureC = 20.0
	NeutralWindSpeedKmh = 0.0
)

// Reading is the current weather at a delivery destination.
type Reading struct {
	Condition    Condition
	TemperatureC float64
	WindSpeedKmh float64
}

// NeutralReading is the fallback reading: clear sky, 20°C, no wind.
func NeutralReading() Reading {
	return Reading{
		Condition:    Clear,
		TemperatureC: NeutralTemperatureC,
		WindSpeedKmh: NeutralWindSpeedKmh,
	}
}

// ConditionFromCode maps a WMO weather interpretation code to a Condition.
//
//	51–67, 80–82  drizzle, rain, rain showers  -> Rain
//	71–77, 85–86  snow, snow grains, showers   -> Snow
//	95–99         thunderstorm (with hail)     -> Storm
//	anything else, fog (45, 48) included       -> Clear
func ConditionFromCode(code int) Condition {
	switch {
	case code >= 51 && code <= 67, code >= 80 && code <= 82:
		return Rain
	case code >= 71 && code <= 77, code >= 85 && code <= 86:
		return Snow
	case code >= 95 && code <= 99:
		return Storm
	default:
		return Clear
	}
}

func (r Reading) String() string {
	return fmt.Sprintf("%s, %.1f°C, wind %.1f km/h", r.Condition, r.TemperatureC, r.WindSpeedKmh)
}
