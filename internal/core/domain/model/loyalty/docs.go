// Package loyalty implements the tiered loyalty programme. Tiers are unlocked
// by completed orders and discount the delivery fee only.
package loyalty
