package models

import "time"

// PendingPayment marks an in-flight payment widget session. It is written
// immediately before the widget launches and deleted on success, cancel,
// or webhook finalization — never left dangling, or the widget would
// reopen on a later unrelated visit.
type PendingPayment struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	SessionID string `gorm:"uniqueIndex;not null" json:"-"`
	Reference string `gorm:"uniqueIndex;not null" json:"reference"`

	Provider    string `json:"provider"`
	PublicKey   string `json:"publicKey"`
	AmountMinor int64  `json:"amount"` // minor currency units, widget convention
	Currency    string `json:"currency"`
	Email       string `json:"email"`

	CreatedAt time.Time `json:"created_at"`
}

// SessionState is the session-only slice of storefront state: active
// display currency, applied coupon, chosen shipping option. Carts are
// persisted separately; this record expires with the session.
type SessionState struct {
	Currency         string      `json:"currency"`
	Coupon           *CouponInfo `json:"coupon,omitempty"`
	ShippingOptionID uint        `json:"shipping_option_id,omitempty"`
}
