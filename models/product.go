package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductType tags what kind of thing a product is; cart behaviour
// (quantity rules, shipping, tier mapping) depends on it.
type ProductType string

const (
	ProductTypeCourse       ProductType = "course"
	ProductTypeTicket       ProductType = "ticket"
	ProductTypeSubscription ProductType = "subscription"
	ProductTypeDigital      ProductType = "digital"
	ProductTypePhysical     ProductType = "physical"
)

type Product struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessID  uint        `gorm:"index;not null" json:"business_id"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Type        ProductType `gorm:"not null" json:"type"`

	// Minimum order quantity for physical goods sold by unit length or
	// weight (e.g. fabric by the yard). Zero means no floor beyond 1.
	MinRequired int `json:"min_required"`

	Stock  int    `json:"stock"`
	Sizes  string `json:"sizes"`  // comma-separated, physical goods only
	Colors string `json:"colors"` // comma-separated, physical goods only

	Prices []PriceVariant     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"prices"`
	Tiers  []TicketTier       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"tiers,omitempty"`
	Plans  []SubscriptionPlan `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"plans,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PriceVariant is the product's price in one display currency. A product
// is only purchasable in currencies it has a variant for.
type PriceVariant struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"index;uniqueIndex:idx_product_currency" json:"product_id"`
	Currency  string          `gorm:"uniqueIndex:idx_product_currency;not null" json:"currency"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
}

// TicketTier is a priced variant of a ticket product (e.g. "VIP").
type TicketTier struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"index" json:"product_id"`
	Name      string          `gorm:"not null" json:"name"`
	Currency  string          `gorm:"not null" json:"currency"`
	Price     decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Capacity  int             `json:"capacity"`
}

// SubscriptionPlan is a priced billing period of a subscription product.
type SubscriptionPlan struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"index" json:"product_id"`
	Period    string          `gorm:"not null" json:"period"` // monthly, quarterly, yearly
	Currency  string          `gorm:"not null" json:"currency"`
	Price     decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
}
