package model

import "github.com/shopspring/decimal"

type CatalogItem struct {
	ID    uint64          `gorm:"primaryKey" json:"id"`
	Name  string          `gorm:"size:128;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"price"`
}

func (CatalogItem) TableName() string { return "catalog_item" }
