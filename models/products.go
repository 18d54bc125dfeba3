package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the catalog.
// SKU is the globally unique product code.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:255;not null;index"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category    string          `gorm:"size:100;index"`
	SKU         string          `gorm:"size:50;uniqueIndex;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) TableName() string {
	return "products"
}
