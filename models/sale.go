package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable record of a completed sale. UnitPrice is the price at
// the time of sale, deliberately decoupled from the product's current price
// so historical figures stay accurate after price changes.
type Sale struct {
	ID          uint            `gorm:"primaryKey"`
	ProductID   uint            `gorm:"index;not null"`
	Product     Product         `gorm:"foreignKey:ProductID;constraint:-"` // sales outlive their product, no FK
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaleDate    time.Time       `gorm:"index;not null"`
	Channel     string          `gorm:"size:50;index"`
}

func (s *Sale) TableName() string {
	return "sales"
}
