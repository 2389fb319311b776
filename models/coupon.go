package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CouponType string

const (
	CouponTypeFixed      CouponType = "fixed"
	CouponTypePercentage CouponType = "percentage"
)

// Coupon is a backend-validated discount code belonging to a business.
type Coupon struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	BusinessID uint            `gorm:"index" json:"business_id"`
	Code       string          `gorm:"uniqueIndex;not null" json:"code"`
	Type       CouponType      `gorm:"not null" json:"type"`
	Value      decimal.Decimal `gorm:"type:numeric;not null" json:"value"` // amount or percent depending on Type
	MinAmount  decimal.Decimal `gorm:"type:numeric" json:"min_amount"`
	MaxUses    int             `json:"max_uses"` // zero means unlimited
	Uses       int             `json:"uses"`
	ValidFrom  *time.Time      `json:"valid_from,omitempty"`
	ValidUntil *time.Time      `json:"valid_until,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CouponInfo is session state: the discount computed for the applied code
// and the total it was computed against. Cleared on every cart mutation —
// a coupon is only valid for the exact amount it was applied to.
type CouponInfo struct {
	Code             string          `json:"code"`
	Discount         decimal.Decimal `json:"discount"`
	DiscountedAmount decimal.Decimal `json:"discountedAmount"`
}
