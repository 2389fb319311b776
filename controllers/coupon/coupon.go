package couponControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/techcrush-lms/storefront-api/models"
	"github.com/techcrush-lms/storefront-api/pricing"
	"github.com/techcrush-lms/storefront-api/session"
	"github.com/techcrush-lms/storefront-api/store"
)

var (
	ErrCouponInvalid   = errors.New("invalid coupon code")
	ErrCouponExpired   = errors.New("coupon expired")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
	ErrBelowMinAmount  = errors.New("order amount below coupon minimum")
	ErrAmountMismatch  = errors.New("amount does not match cart total")
)

// ComputeDiscount validates the coupon against the submitted amount and
// returns the discount. Fixed coupons are capped at the amount; a
// discount never exceeds what it is discounting.
func ComputeDiscount(coupon models.Coupon, amount decimal.Decimal) (decimal.Decimal, error) {
	now := time.Now()
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return decimal.Zero, ErrCouponInvalid
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return decimal.Zero, ErrCouponExpired
	}
	if coupon.MaxUses > 0 && coupon.Uses >= coupon.MaxUses {
		return decimal.Zero, ErrCouponExhausted
	}
	if amount.LessThan(coupon.MinAmount) {
		return decimal.Zero, ErrBelowMinAmount
	}

	var discount decimal.Decimal
	switch coupon.Type {
	case models.CouponTypePercentage:
		discount = amount.Mul(coupon.Value).Div(decimal.NewFromInt(100)).Round(2)
	default:
		discount = coupon.Value
	}
	if discount.GreaterThan(amount) {
		discount = amount
	}
	return discount, nil
}

// DiscountForCart computes the discount against the server-derived cart
// total. The client-declared amount is only accepted when it matches that
// total; the discount itself never derives from client input.
func DiscountForCart(coupon models.Coupon, claimed, cartTotal decimal.Decimal) (models.CouponInfo, error) {
	if !claimed.Equal(cartTotal) {
		return models.CouponInfo{}, ErrAmountMismatch
	}
	discount, err := ComputeDiscount(coupon, cartTotal)
	if err != nil {
		return models.CouponInfo{}, err
	}
	return models.CouponInfo{
		Code:             coupon.Code,
		Discount:         discount,
		DiscountedAmount: cartTotal.Sub(discount),
	}, nil
}

type applyCouponInput struct {
	Email  string          `json:"email" binding:"required,email"`
	Code   string          `json:"code" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// POST /coupon-management/apply-coupon
// Precondition: the buyer is registered. The discount is computed against
// the grand total the server derives from the session's cart; the
// submitted amount must match it. The resulting CouponInfo is stored on
// the session and any later cart mutation clears it.
func ApplyCoupon(db *gorm.DB, carts *store.CartStore, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		var input applyCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var customer models.Customer
		if err := db.Where("email = ?", input.Email).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Customer is not registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate customer"})
			return
		}

		var coupon models.Coupon
		if err := db.Where("code = ?", input.Code).First(&coupon).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ErrCouponInvalid.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate coupon"})
			return
		}

		cart, err := carts.Load(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		state, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
			return
		}
		var shipping *models.ShippingOption
		if state.ShippingOptionID != 0 {
			var opt models.ShippingOption
			if err := db.First(&opt, "id = ?", state.ShippingOptionID).Error; err == nil {
				shipping = &opt
			}
		}
		totals := pricing.Compute(cart, state.Currency, shipping, nil)

		info, err := DiscountForCart(coupon, input.Amount, totals.GrandTotal)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := sessions.ApplyCoupon(c.Request.Context(), sessionID, info); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply coupon"})
			return
		}

		if err := db.Model(&coupon).Update("uses", gorm.Expr("uses + 1")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply coupon"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"discount":         info.Discount,
			"discountedAmount": info.DiscountedAmount,
		})
	}
}
