package couponControllers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techcrush-lms/storefront-api/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeDiscount_Fixed(t *testing.T) {
	coupon := models.Coupon{Code: "SAVE10", Type: models.CouponTypeFixed, Value: d("10")}

	discount, err := ComputeDiscount(coupon, d("100"))

	require.NoError(t, err)
	assert.True(t, discount.Equal(d("10")))
}

func TestComputeDiscount_FixedCappedAtAmount(t *testing.T) {
	coupon := models.Coupon{Code: "BIG", Type: models.CouponTypeFixed, Value: d("50")}

	discount, err := ComputeDiscount(coupon, d("30"))

	require.NoError(t, err)
	assert.True(t, discount.Equal(d("30")))
}

func TestComputeDiscount_Percentage(t *testing.T) {
	coupon := models.Coupon{Code: "TEN", Type: models.CouponTypePercentage, Value: d("10")}

	discount, err := ComputeDiscount(coupon, d("149.99"))

	require.NoError(t, err)
	assert.True(t, discount.Equal(d("15.00")), "got %s", discount)
}

func TestComputeDiscount_Expired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	coupon := models.Coupon{Type: models.CouponTypeFixed, Value: d("5"), ValidUntil: &past}

	_, err := ComputeDiscount(coupon, d("100"))

	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestComputeDiscount_NotYetValid(t *testing.T) {
	future := time.Now().Add(time.Hour)
	coupon := models.Coupon{Type: models.CouponTypeFixed, Value: d("5"), ValidFrom: &future}

	_, err := ComputeDiscount(coupon, d("100"))

	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestComputeDiscount_UsageLimit(t *testing.T) {
	coupon := models.Coupon{Type: models.CouponTypeFixed, Value: d("5"), MaxUses: 3, Uses: 3}

	_, err := ComputeDiscount(coupon, d("100"))

	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestDiscountForCart_RejectsInflatedAmount(t *testing.T) {
	coupon := models.Coupon{Code: "TEN", Type: models.CouponTypePercentage, Value: d("10")}

	// a claimed amount of 1000 against a 50 cart must not produce a
	// 100 discount and a negative grand total
	_, err := DiscountForCart(coupon, d("1000"), d("50"))

	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestDiscountForCart_ComputesAgainstCartTotal(t *testing.T) {
	coupon := models.Coupon{Code: "TEN", Type: models.CouponTypePercentage, Value: d("10")}

	info, err := DiscountForCart(coupon, d("50"), d("50"))

	require.NoError(t, err)
	assert.Equal(t, "TEN", info.Code)
	assert.True(t, info.Discount.Equal(d("5.00")), "got %s", info.Discount)
	assert.True(t, info.DiscountedAmount.Equal(d("45.00")), "got %s", info.DiscountedAmount)
}

func TestComputeDiscount_MinAmount(t *testing.T) {
	coupon := models.Coupon{Type: models.CouponTypeFixed, Value: d("5"), MinAmount: d("50")}

	_, err := ComputeDiscount(coupon, d("49.99"))
	assert.ErrorIs(t, err, ErrBelowMinAmount)

	discount, err := ComputeDiscount(coupon, d("50"))
	require.NoError(t, err)
	assert.True(t, discount.Equal(d("5")))
}
