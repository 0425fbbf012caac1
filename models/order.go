package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a check
type OrderStatus string

const (
	OrderOpen   OrderStatus = "Open"
	OrderClosed OrderStatus = "Closed"
	// OrderCancelled exists in the schema but no endpoint writes it.
	OrderCancelled OrderStatus = "Cancelled"
)

// ItemStatus represents the kitchen lifecycle state of one ordered dish
type ItemStatus string

const (
	ItemPending   ItemStatus = "Pending"
	ItemPreparing ItemStatus = "Preparing"
	ItemServed    ItemStatus = "Served"
	ItemCancelled ItemStatus = "Cancelled"
)

// Order is one seating at one table — the check. Per-head prices are
// snapshotted at open time so a later pricing change never touches an
// already open check.
type Order struct {
	ID             uint            `json:"order_id" gorm:"primaryKey"`
	TableID        uint            `json:"table_id" gorm:"not null;index"`
	Table          Table           `json:"-" gorm:"foreignKey:TableID"`
	Status         OrderStatus     `json:"status" gorm:"not null;default:'Open'"`
	StartTime      time.Time       `json:"start_time" gorm:"not null"`
	EndTime        *time.Time      `json:"end_time"`
	NumAdults      int             `json:"num_adults" gorm:"not null"`
	NumChildren    int             `json:"num_children" gorm:"not null"`
	NumOfCustomers int             `json:"num_of_customers" gorm:"not null"`
	AdultPrice     decimal.Decimal `json:"adult_price" gorm:"type:decimal(10,2);not null"`
	ChildPrice     decimal.Decimal `json:"child_price" gorm:"type:decimal(10,2);not null"`
	Items          []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Events         []OrderEvent    `json:"events,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// OrderItem is one dish on a check. Name and unit price are snapshotted from
// the menu at insert time, so catalog edits never reprice an existing line.
// TicketID groups the lines of one cart submission for the kitchen display.
type OrderItem struct {
	ID         uint            `json:"order_detail_id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"not null;index"`
	MenuItemID uint            `json:"menu_id" gorm:"not null"`
	MenuItem   MenuItem        `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	TicketID   string          `json:"ticket_id" gorm:"size:36;index;not null"`
	Name       string          `json:"name" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	Status     ItemStatus      `json:"status" gorm:"not null;default:'Pending'"`
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"-"`
}

// OrderEvent records a lifecycle transition of a check — audit trail
type OrderEvent struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
