package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/techcrush-lms/storefront-api/models"
)

// ToMinorUnits converts a major-unit decimal amount to the integer minor
// units the payment widgets expect (e.g. 49.99 -> 4999).
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FormatAmount renders an amount for display, two decimal places with the
// currency code prefixed.
func FormatAmount(amount decimal.Decimal, currency string) string {
	return currency + " " + amount.StringFixed(2)
}

// QuantityAdjustable reports whether the cart UI may change a line's
// quantity. Courses, subscriptions and digital products stay at 1.
func QuantityAdjustable(t models.ProductType) bool {
	return t == models.ProductTypeTicket || t == models.ProductTypePhysical
}

// SortTiersByPrice orders ticket tiers cheapest first; product previews
// default to the lowest-priced tier on first render.
func SortTiersByPrice(tiers []models.TicketTier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].Price.LessThan(tiers[j].Price)
	})
}

// SortPlansByPrice orders subscription plans cheapest first.
func SortPlansByPrice(plans []models.SubscriptionPlan) {
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].Price.LessThan(plans[j].Price)
	})
}

// PriceFor picks the product's price variant for the given currency.
func PriceFor(p *models.Product, currency string) (decimal.Decimal, bool) {
	for _, v := range p.Prices {
		if v.Currency == currency {
			return v.Amount, true
		}
	}
	return decimal.Zero, false
}
