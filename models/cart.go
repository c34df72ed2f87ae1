package models

import "time"

// CartItem is one line of a user's in-progress cart. The composite unique
// index keeps at most one row per (user, product) pair; repeated adds
// accumulate into Quantity through an ON CONFLICT upsert.
type CartItem struct {
	CartID    uint `gorm:"primaryKey;autoIncrement;column:cart_id" json:"cart_id"`
	UserID    uint `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
	AddedAt   time.Time
}

func (CartItem) TableName() string { return "cart" }
