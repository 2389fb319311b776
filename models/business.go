package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Business is a tenant storefront, addressed publicly by slug.
type Business struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug            string `gorm:"uniqueIndex;not null" json:"slug"`
	Name            string `gorm:"not null" json:"name"`
	Description     string `json:"description"`
	Logo            string `json:"logo"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DefaultCurrency string `gorm:"default:USD" json:"default_currency"`

	ShippingOptions []ShippingOption `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"shipping_options,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ShippingOption is a flat delivery fee for a location, priced in one
// currency. Carts only charge an option whose currency matches theirs.
type ShippingOption struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	BusinessID uint            `gorm:"index;not null" json:"business_id"`
	Location   string          `gorm:"not null" json:"location"`
	Currency   string          `gorm:"not null" json:"currency"`
	Fee        decimal.Decimal `gorm:"type:numeric;not null" json:"fee"`
}
