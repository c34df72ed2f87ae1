package models

import "time"

type Product struct {
	ProductID   uint    `gorm:"primaryKey;autoIncrement;column:product_id" json:"product_id"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	CreatedAt   time.Time
}
