package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techcrush-lms/storefront-api/models"
)

func uintPtr(v uint) *uint { return &v }

func ticketLine(productID uint, tierID uint, currency string, price string, qty int) models.CartItem {
	return models.CartItem{
		ProductID:    productID,
		ProductType:  models.ProductTypeTicket,
		TicketTierID: uintPtr(tierID),
		Currency:     currency,
		UnitPrice:    decimal.RequireFromString(price),
		Quantity:     qty,
	}
}

func physicalLine(productID uint, currency string, price string, qty, minRequired int) models.CartItem {
	return models.CartItem{
		ProductID:   productID,
		ProductType: models.ProductTypePhysical,
		Currency:    currency,
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    qty,
		MinRequired: minRequired,
	}
}

func TestAddItem_SameKeyIncrementsQuantity(t *testing.T) {
	c := &models.Cart{}

	// add ticket A tier "VIP" $50 twice with quantity 1 each
	AddItem(c, ticketLine(1, 10, "USD", "50", 1))
	AddItem(c, ticketLine(1, 10, "USD", "50", 1))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.True(t, c.Items[0].UnitPrice.Mul(decimal.NewFromInt(2)).Equal(decimal.RequireFromString("100")))
}

func TestAddItem_QuantitySumsOverRepeatedAdds(t *testing.T) {
	c := &models.Cart{}
	quantities := []int{1, 3, 2, 5}
	sum := 0
	for _, q := range quantities {
		AddItem(c, physicalLine(7, "NGN", "1500.50", q, 0))
		sum += q
	}
	require.Len(t, c.Items, 1)
	assert.Equal(t, sum, c.Items[0].Quantity)
}

func TestAddItem_DifferentTierCreatesNewLine(t *testing.T) {
	c := &models.Cart{}
	AddItem(c, ticketLine(1, 10, "USD", "50", 1))
	AddItem(c, ticketLine(1, 11, "USD", "120", 1))

	assert.Len(t, c.Items, 2)
}

func TestAddItem_DifferentCurrencyCreatesNewLine(t *testing.T) {
	c := &models.Cart{}
	AddItem(c, physicalLine(7, "USD", "20", 1, 0))
	AddItem(c, physicalLine(7, "NGN", "30000", 1, 0))

	assert.Len(t, c.Items, 2)
}

func TestAddItem_NilVsSetTierAreDistinctLines(t *testing.T) {
	c := &models.Cart{}
	AddItem(c, models.CartItem{ProductID: 3, Currency: "USD", Quantity: 1})
	AddItem(c, ticketLine(3, 9, "USD", "10", 1))

	assert.Len(t, c.Items, 2)
}

func TestRemoveItem_CurrencyScoped(t *testing.T) {
	c := &models.Cart{}
	AddItem(c, physicalLine(7, "USD", "20", 1, 0))
	AddItem(c, physicalLine(7, "NGN", "30000", 2, 0))
	AddItem(c, physicalLine(8, "USD", "12", 1, 0))

	RemoveItem(c, 7, "USD")

	require.Len(t, c.Items, 2)
	for _, it := range c.Items {
		assert.False(t, it.ProductID == 7 && it.Currency == "USD")
	}
	// other lines unchanged
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, uint(8), c.Items[1].ProductID)
}

func TestRemoveItem_NoMatchIsNoop(t *testing.T) {
	c := &models.Cart{}
	AddItem(c, physicalLine(7, "USD", "20", 1, 0))

	RemoveItem(c, 99, "USD")
	RemoveItem(c, 7, "EUR")

	assert.Len(t, c.Items, 1)
}

func TestUpdateQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	for _, qty := range []int{0, -1, -5} {
		c := &models.Cart{}
		AddItem(c, physicalLine(7, "USD", "20", 3, 0))

		UpdateQuantity(c, 7, qty, "USD")

		assert.Empty(t, c.Items, "quantity %d should remove the line", qty)
	}
}

func TestUpdateQuantity_EquivalentToRemove(t *testing.T) {
	build := func() *models.Cart {
		c := &models.Cart{}
		AddItem(c, physicalLine(7, "USD", "20", 3, 0))
		AddItem(c, physicalLine(8, "USD", "9", 1, 0))
		return c
	}

	removed := build()
	RemoveItem(removed, 7, "USD")

	updated := build()
	UpdateQuantity(updated, 7, 0, "USD")

	require.Len(t, updated.Items, len(removed.Items))
	for i := range updated.Items {
		assert.Equal(t, removed.Items[i].ProductID, updated.Items[i].ProductID)
	}
}

func TestUpdateQuantity_BelowMinRequiredRemoves(t *testing.T) {
	// fabric sold with a minimum order of 2 yards: decrementing from 2
	// removes the line rather than leaving quantity 1
	c := &models.Cart{}
	AddItem(c, physicalLine(7, "USD", "15", 2, 2))

	UpdateQuantity(c, 7, 1, "USD")

	assert.Empty(t, c.Items)
}

func TestUpdateQuantity_AtFloorKeepsLine(t *testing.T) {
	c := &models.Cart{}
	AddItem(c, physicalLine(7, "USD", "15", 5, 2))

	UpdateQuantity(c, 7, 2, "USD")

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestUpdateQuantity_OnlyMatchingCurrency(t *testing.T) {
	c := &models.Cart{}
	AddItem(c, physicalLine(7, "USD", "20", 1, 0))
	AddItem(c, physicalLine(7, "NGN", "30000", 1, 0))

	UpdateQuantity(c, 7, 4, "USD")

	require.Len(t, c.Items, 2)
	for _, it := range c.Items {
		if it.Currency == "USD" {
			assert.Equal(t, 4, it.Quantity)
		} else {
			assert.Equal(t, 1, it.Quantity)
		}
	}
}

func TestClear(t *testing.T) {
	c := &models.Cart{}
	AddItem(c, physicalLine(7, "USD", "20", 1, 0))
	AddItem(c, ticketLine(1, 10, "USD", "50", 2))

	Clear(c)

	assert.Empty(t, c.Items)
}

func TestTotalQuantity_CountsAllCurrencies(t *testing.T) {
	c := &models.Cart{}
	AddItem(c, physicalLine(7, "USD", "20", 2, 0))
	AddItem(c, physicalLine(8, "NGN", "5000", 3, 0))

	assert.Equal(t, 5, TotalQuantity(c))
}
