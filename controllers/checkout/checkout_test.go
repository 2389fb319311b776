package checkoutControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techcrush-lms/storefront-api/models"
)

func uintPtr(v uint) *uint { return &v }

func TestBuildPurchaseLines(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, ProductType: models.ProductTypeTicket, TicketTierID: uintPtr(10), Quantity: 2},
		{ProductID: 2, ProductType: models.ProductTypeSubscription, SubscriptionPlanID: uintPtr(20), Quantity: 1},
		{ProductID: 3, ProductType: models.ProductTypeCourse, Quantity: 1},
		{ProductID: 4, ProductType: models.ProductTypePhysical, Quantity: 3},
	}

	lines := BuildPurchaseLines(items)
	require.Len(t, lines, 4)

	// ticket and subscription lines map to their tier, others to product
	assert.Equal(t, PurchaseLine{TierID: 10, Quantity: 2}, lines[0])
	assert.Equal(t, PurchaseLine{TierID: 20, Quantity: 1}, lines[1])
	assert.Equal(t, PurchaseLine{ProductID: 3, Quantity: 1}, lines[2])
	assert.Equal(t, PurchaseLine{ProductID: 4, Quantity: 3}, lines[3])
}

func TestBuildPurchaseLines_Empty(t *testing.T) {
	assert.Empty(t, BuildPurchaseLines(nil))
}

func TestGeneratePaymentRef_Unique(t *testing.T) {
	a := generatePaymentRef()
	b := generatePaymentRef()
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^\d{14}-`, a)
}
