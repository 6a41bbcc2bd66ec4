package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID         uint64          `gorm:"primaryKey" json:"id"`
	ItemName   string          `gorm:"size:128;not null" json:"itemName"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Total      decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"total"`
	CreatedUtc time.Time       `gorm:"not null" json:"createdUtc"`
}

func (Order) TableName() string { return "orders" }
