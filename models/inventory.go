package models

import (
	"time"
)

// Inventory tracks stock for a single product.
// At most one row exists per product.
type Inventory struct {
	ID              uint    `gorm:"primaryKey"`
	ProductID       uint    `gorm:"uniqueIndex;not null"`
	Product         Product `gorm:"foreignKey:ProductID"`
	Quantity        int     `gorm:"not null;default:0"`
	ReorderLevel    int     `gorm:"not null;default:10"`
	LastRestockDate *time.Time
	Warehouse       string `gorm:"size:100;default:main"`
	UpdatedAt       time.Time
}

func (i *Inventory) TableName() string {
	return "inventory"
}
