package models

import "github.com/shopspring/decimal"

// Product is a catalog entry. One row per code, size and color combination.
type Product struct {
	Base
	Code        string          `gorm:"size:50;not null;uniqueIndex"               json:"code"`
	ImageURL    string          `gorm:"size:500"                                   json:"imageUrl"`
	Name        string          `gorm:"size:200;not null;index"                    json:"name"`
	Description string          `gorm:"size:1000"                                  json:"description"`
	Size        Size            `gorm:"not null"                                   json:"size"`
	Color       Color           `gorm:"not null"                                   json:"color"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"                json:"price"`
	Stock       int             `gorm:"not null;default:0;check:chk_products_stock,stock >= 0" json:"stock"`
}

// IsAvailable reports whether at least one unit is in stock.
func (p Product) IsAvailable() bool { return p.Stock > 0 }
