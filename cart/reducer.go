// Package cart holds the pure state transitions for a storefront cart.
// Every mutation is a function from cart value to cart value; persistence
// and notification live in the store layer, never here.
package cart

import (
	"time"

	"github.com/techcrush-lms/storefront-api/models"
)

// AddItem inserts item as a new line, or increments the quantity of the
// line sharing its dedup key (product, ticket tier, subscription plan,
// currency). Always succeeds.
func AddItem(c *models.Cart, item models.CartItem) {
	now := time.Now()
	for i := range c.Items {
		if c.Items[i].SameLine(item) {
			c.Items[i].Quantity += item.Quantity
			c.Items[i].UpdatedAt = now
			c.UpdatedAt = now
			return
		}
	}
	item.AddedAt = now
	item.UpdatedAt = now
	c.Items = append(c.Items, item)
	c.UpdatedAt = now
}

// RemoveItem deletes every line matching both product id and currency.
// Removal is currency-scoped: the same product can hold parallel lines
// per currency and only the matching ones go. No-op when nothing matches.
func RemoveItem(c *models.Cart, productID uint, currency string) {
	kept := c.Items[:0]
	removed := false
	for _, it := range c.Items {
		if it.ProductID == productID && it.Currency == currency {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	c.Items = kept
	if removed {
		c.UpdatedAt = time.Now()
	}
}

// UpdateQuantity sets the quantity of the lines matching product id and
// currency. A quantity at or below zero, or below the line's minimum
// order floor, deletes the line instead of clamping it.
func UpdateQuantity(c *models.Cart, productID uint, quantity int, currency string) {
	if quantity <= 0 {
		RemoveItem(c, productID, currency)
		return
	}
	now := time.Now()
	kept := c.Items[:0]
	touched := false
	for _, it := range c.Items {
		if it.ProductID == productID && it.Currency == currency {
			touched = true
			if quantity < it.QuantityFloor() {
				continue // below the floor: drop the line
			}
			it.Quantity = quantity
			it.UpdatedAt = now
		}
		kept = append(kept, it)
	}
	c.Items = kept
	if touched {
		c.UpdatedAt = now
	}
}

// Clear empties the cart's line list.
func Clear(c *models.Cart) {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

// TotalQuantity sums quantities across all lines regardless of currency.
func TotalQuantity(c *models.Cart) int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}
