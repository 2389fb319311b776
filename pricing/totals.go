// Package pricing derives cart totals and carries the small money and
// product-type helpers shared by checkout and catalog.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/techcrush-lms/storefront-api/models"
)

// Totals is a pure derivation over the stores: always recomputed from
// current cart/session state, never cached, so it cannot drift from the
// underlying line list.
type Totals struct {
	Currency      string          `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ItemCount     int             `json:"item_count"`     // distinct visible lines
	TotalQuantity int             `json:"total_quantity"` // sum of visible quantities
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	Discount      decimal.Decimal `json:"discount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// FilterByCurrency returns the cart lines priced in the active currency.
// Lines in other currencies are hidden, not deleted: switching currency
// reveals them again.
func FilterByCurrency(items []models.CartItem, currency string) []models.CartItem {
	var visible []models.CartItem
	for _, it := range items {
		if it.Currency == currency {
			visible = append(visible, it)
		}
	}
	return visible
}

// HasPhysical reports whether any line is a physical product. Shipping
// and delivery-address collection both hinge on it.
func HasPhysical(items []models.CartItem) bool {
	for _, it := range items {
		if it.ProductType == models.ProductTypePhysical {
			return true
		}
	}
	return false
}

// Compute derives totals for the active currency. The shipping fee is
// added only when a visible physical line exists and an option matching
// the currency is selected; the coupon discount is applied as-is.
// grand total = subtotal + shipping - discount.
func Compute(c *models.Cart, currency string, shipping *models.ShippingOption, coupon *models.CouponInfo) Totals {
	t := Totals{
		Currency:    currency,
		Subtotal:    decimal.Zero,
		ShippingFee: decimal.Zero,
		Discount:    decimal.Zero,
	}
	if c == nil {
		t.GrandTotal = decimal.Zero
		return t
	}

	visible := FilterByCurrency(c.Items, currency)
	for _, it := range visible {
		t.Subtotal = t.Subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		t.TotalQuantity += it.Quantity
	}
	t.ItemCount = len(visible)

	if shipping != nil && shipping.Currency == currency && HasPhysical(visible) {
		t.ShippingFee = shipping.Fee
	}
	if coupon != nil {
		t.Discount = coupon.Discount
	}

	t.GrandTotal = t.Subtotal.Add(t.ShippingFee).Sub(t.Discount)
	return t
}
