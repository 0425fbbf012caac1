package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the immutable snapshot written when a check is closed. The total is
// always the server-side computation, never a client-supplied figure.
type Bill struct {
	ID          uint            `json:"bill_id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"uniqueIndex;not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
}
