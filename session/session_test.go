package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techcrush-lms/storefront-api/models"
)

func testStore(t *testing.T) *Store {
	mr := miniredis.RunT(t)
	return NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func couponInfo() models.CouponInfo {
	return models.CouponInfo{
		Code:             "SAVE10",
		Discount:         decimal.RequireFromString("5"),
		DiscountedAmount: decimal.RequireFromString("45"),
	}
}

func TestGet_DefaultsOnMiss(t *testing.T) {
	s := testStore(t)

	state, err := s.Get(context.Background(), "sess_x")

	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, state.Currency)
	assert.Nil(t, state.Coupon)
	assert.Zero(t, state.ShippingOptionID)
}

func TestApplyAndClearCoupon(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.ApplyCoupon(ctx, "sess_x", couponInfo()))

	state, err := s.Get(ctx, "sess_x")
	require.NoError(t, err)
	require.NotNil(t, state.Coupon)
	assert.Equal(t, "SAVE10", state.Coupon.Code)
	assert.True(t, state.Coupon.Discount.Equal(decimal.RequireFromString("5")))

	require.NoError(t, s.ClearCoupon(ctx, "sess_x"))

	state, err = s.Get(ctx, "sess_x")
	require.NoError(t, err)
	assert.Nil(t, state.Coupon)
}

func TestSetCurrency_DropsCouponOnChange(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.ApplyCoupon(ctx, "sess_x", couponInfo()))
	require.NoError(t, s.SetCurrency(ctx, "sess_x", "NGN"))

	state, err := s.Get(ctx, "sess_x")
	require.NoError(t, err)
	assert.Equal(t, "NGN", state.Currency)
	assert.Nil(t, state.Coupon)
}

func TestSetCurrency_SameCurrencyKeepsCoupon(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.ApplyCoupon(ctx, "sess_x", couponInfo()))
	require.NoError(t, s.SetCurrency(ctx, "sess_x", DefaultCurrency))

	state, err := s.Get(ctx, "sess_x")
	require.NoError(t, err)
	require.NotNil(t, state.Coupon)
	assert.Equal(t, "SAVE10", state.Coupon.Code)
}

func TestSetShipping(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetShipping(ctx, "sess_x", 7))

	state, err := s.Get(ctx, "sess_x")
	require.NoError(t, err)
	assert.EqualValues(t, 7, state.ShippingOptionID)
}
