package kernel

import "github.com/shopspring/decimal"

// Round2 rounds a currency amount to cents, half away from zero. Amounts are
// carried unrounded through calculations and rounded only when persisted or
// displayed.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Percent returns amount * percentage / 100 without rounding.
func Percent(amount decimal.Decimal, percentage int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(percentage))).Div(decimal.NewFromInt(100))
}
