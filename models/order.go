package models

import "time"

type Order struct {
	OrderID       uint        `gorm:"primaryKey;autoIncrement;column:order_id" json:"order_id"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	FullName      string      `json:"full_name"`
	PhoneNumber   string      `json:"phone_number"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	Province      string      `json:"province"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"` // e.g. "card", "cod"
	OrderRef      string      `gorm:"uniqueIndex" json:"order_ref"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderItem snapshots the unit price at checkout time, so later catalog
// price changes never alter historical orders.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

func (OrderItem) TableName() string { return "order_items_details" }
