package models

import "github.com/shopspring/decimal"

func init() {
	//讓price以JSON數字輸出而非字串
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Description   string          `gorm:"size:500" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null" json:"stockQuantity"`
	ImageURL      string          `gorm:"size:255" json:"imageUrl"`
	Categories    []Category      `gorm:"many2many:product_categories" json:"categories"`
}
