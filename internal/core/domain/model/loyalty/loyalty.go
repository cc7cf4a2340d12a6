package loyalty

import (
	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/kernel"
)

// Tier is a named discount bracket unlocked by a number of completed orders.
type Tier struct {
	Name               string
	OrdersRequired     int
	DiscountPercentage int
}

// Tiers returns the tier table in ascending order of OrdersRequired.
func Tiers() []Tier {
	return []Tier{
		{Name: "Bronze", OrdersRequired: 1, DiscountPercentage: 10},
		{Name: "Silver", OrdersRequired: 5, DiscountPercentage: 20},
		{Name: "Gold", OrdersRequired: 10, DiscountPercentage: 30},
		{Name: "Platinum", OrdersRequired: 20, DiscountPercentage: 40},
		{Name: "Diamond", OrdersRequired: 30, DiscountPercentage: 50},
	}
}

// Status is a customer's standing in the programme. CurrentTier is nil until
// the first completed order; NextTier is nil at the top tier.
type Status struct {
	CurrentTier        *Tier
	NextTier           *Tier
	DiscountPercentage int
	OrdersToNextTier   int
	CompletedOrders    int
}

// TierName returns the current tier name, or "" when no tier is reached.
func (s Status) TierName() string {
	if s.CurrentTier == nil {
		return ""
	}
	return s.CurrentTier.Name
}

// CalculateStatus maps a completed-order count to a Status. Negative counts
// are treated as zero.
func CalculateStatus(completedOrders int) Status {
	completedOrders = max(completedOrders, 0)
	tiers := Tiers()

	current := -1
	for i := len(tiers) - 1; i >= 0; i-- {
		if tiers[i].OrdersRequired <= completedOrders {
			current = i
			break
		}
	}

	status := Status{CompletedOrders: completedOrders}
	if current >= 0 {
		tier := tiers[current]
		status.CurrentTier = &tier
		status.DiscountPercentage = tier.DiscountPercentage
	}
	if current+1 < len(tiers) {
		next := tiers[current+1]
		status.NextTier = &next
		status.OrdersToNextTier = next.OrdersRequired - completedOrders
	}

	return status
}

// CalculateDiscount returns the loyalty discount on a delivery fee, rounded to
// cents. The discount never applies to item subtotal or tax.
func CalculateDiscount(deliveryFee decimal.Decimal, percentage int) decimal.Decimal {
	if percentage <= 0 || deliveryFee.IsNegative() {
		return decimal.Zero
	}
	return kernel.Round2(kernel.Percent(deliveryFee, percentage))
}
