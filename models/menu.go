package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is one entry in the catalog. Buffet-included dishes carry a zero
// price and are covered by the per-head charge; priced dishes bill à la carte.
type MenuItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"not null"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	IsBuffet  bool            `json:"is_buffet" gorm:"default:false"`
	Image     string          `json:"image"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}
