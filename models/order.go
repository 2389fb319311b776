package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order is created only once a payment has been verified. Totals are
// frozen copies of the cart aggregation at purchase time.
type Order struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Reference  string `gorm:"uniqueIndex;not null" json:"reference"` // payment reference
	BusinessID uint   `gorm:"index" json:"business_id"`
	CustomerID uint   `gorm:"index" json:"customer_id"`

	Currency    string          `gorm:"not null" json:"currency"`
	Subtotal    decimal.Decimal `gorm:"type:numeric" json:"subtotal"`
	ShippingFee decimal.Decimal `gorm:"type:numeric" json:"shipping_fee"`
	Discount    decimal.Decimal `gorm:"type:numeric" json:"discount"`
	Total       decimal.Decimal `gorm:"type:numeric" json:"total"`
	CouponCode  string          `json:"coupon_code,omitempty"`
	Provider    string          `json:"provider"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	Status        OrderStatus   `gorm:"not null" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null" json:"payment_status"`

	Customer  Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a frozen copy of a cart line at purchase time.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index" json:"order_id"`

	ProductID          uint        `json:"product_id"`
	ProductName        string      `json:"product_name"`
	ProductType        ProductType `json:"product_type"`
	TicketTierID       *uint       `json:"ticket_tier_id,omitempty"`
	SubscriptionPlanID *uint       `json:"subscription_plan_id,omitempty"`

	Currency  string          `json:"currency"`
	UnitPrice decimal.Decimal `gorm:"type:numeric" json:"unit_price"`
	Quantity  int             `json:"quantity"`

	Size         string `json:"size,omitempty"`
	Color        string `json:"color,omitempty"`
	Measurements string `json:"measurements,omitempty"`
}
