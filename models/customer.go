package models

import "time"

// Customer is a registered buyer. Registration is a precondition for
// payment creation and coupon application.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `json:"phone"`
	Address   Address   `gorm:"embedded" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address is only collected when the cart contains a physical line.
type Address struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Street  string `json:"street"`
}
