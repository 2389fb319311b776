package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart holds one session's cart lines. Created lazily on first add,
// cleared entirely on successful checkout or explicit clear.
type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	SessionID string     `gorm:"uniqueIndex" json:"session_id"` // one cart per storefront session
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is a denormalized snapshot of a product taken at add time.
// Two adds collapse into one line when their dedup key matches; see
// (CartItem).SameLine.
type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CartID    uint `gorm:"index" json:"cart_id"`
	ProductID uint `json:"product_id"`

	ProductName  string      `json:"product_name"`
	ProductImage string      `json:"product_image"`
	ProductType  ProductType `json:"product_type"`

	// Variant references; nil when the product has no tiers/plans.
	TicketTierID       *uint `json:"ticket_tier_id,omitempty"`
	SubscriptionPlanID *uint `json:"subscription_plan_id,omitempty"`

	Currency  string          `gorm:"not null" json:"currency"`
	UnitPrice decimal.Decimal `gorm:"type:numeric" json:"unit_price"`
	Quantity  int             `json:"quantity"`

	// Minimum order quantity snapshot from the product; dropping below it
	// removes the line rather than clamping.
	MinRequired int `json:"min_required"`

	Size         string `json:"size,omitempty"`
	Color        string `json:"color,omitempty"`
	Measurements string `json:"measurements,omitempty"` // free-form, bespoke physical goods

	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SameLine reports whether two items collapse into one cart line:
// same product, same ticket tier, same subscription plan, same currency.
func (i CartItem) SameLine(other CartItem) bool {
	return i.ProductID == other.ProductID &&
		i.Currency == other.Currency &&
		uintPtrEqual(i.TicketTierID, other.TicketTierID) &&
		uintPtrEqual(i.SubscriptionPlanID, other.SubscriptionPlanID)
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// QuantityFloor is the smallest quantity the line may hold before it is
// removed from the cart.
func (i CartItem) QuantityFloor() int {
	if i.MinRequired > 1 {
		return i.MinRequired
	}
	return 1
}
