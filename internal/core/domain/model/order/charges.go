package order

import (
	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/loyalty"
)

// Charges is the money side of an order. Amounts stay unrounded until
// Rounded is called at the persist or response boundary.
type Charges struct {
	Subtotal          decimal.Decimal
	Tax               decimal.Decimal
	Delivery          delivery.FeeBreakdown
	LoyaltyDiscount   decimal.Decimal
	LoyaltyPercentage int
	LoyaltyTier       string
	Total             decimal.Decimal
}

// CalculateCharges prices an order:
//
//	subtotal = Σ unitPrice * quantity
//	tax      = subtotal * taxRate
//	discount = round2(deliveryFee * loyaltyPercentage / 100)
//	total    = subtotal + tax + deliveryFee - discount
func CalculateCharges(
	items []Item,
	taxRate decimal.Decimal,
	fee delivery.FeeBreakdown,
	loyaltyTier string,
	loyaltyPercentage int,
) Charges {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	tax := subtotal.Mul(taxRate)
	discount := loyalty.CalculateDiscount(fee.TotalFee, loyaltyPercentage)

	return Charges{
		Subtotal:          subtotal,
		Tax:               tax,
		Delivery:          fee,
		LoyaltyDiscount:   discount,
		LoyaltyPercentage: loyaltyPercentage,
		LoyaltyTier:       loyaltyTier,
		Total:             subtotal.Add(tax).Add(fee.TotalFee).Sub(discount),
	}
}

// Rounded returns a copy with every amount rounded to cents.
func (c Charges) Rounded() Charges {
	c.Subtotal = kernel.Round2(c.Subtotal)
	c.Tax = kernel.Round2(c.Tax)
	c.Delivery.BaseFee = kernel.Round2(c.Delivery.BaseFee)
	c.Delivery.WeatherAdjustment = kernel.Round2(c.Delivery.WeatherAdjustment)
	c.Delivery.TotalAdjustment = kernel.Round2(c.Delivery.TotalAdjustment)
	c.Delivery.TotalFee = kernel.Round2(c.Delivery.TotalFee)
	c.LoyaltyDiscount = kernel.Round2(c.LoyaltyDiscount)
	c.Total = kernel.Round2(c.Total)
	return c
}
