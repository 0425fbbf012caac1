package models

import "time"

// TableStatus represents the occupancy state of a physical table
type TableStatus string

const (
	TableAvailable TableStatus = "Available"
	TableOccupied  TableStatus = "Occupied"
)

// Table is a physical table. Capacity holds the seated headcount while the
// table is occupied and drops back to 0 on release.
type Table struct {
	ID          uint        `json:"table_id" gorm:"primaryKey"`
	TableNumber int         `json:"table_number" gorm:"uniqueIndex;not null"`
	Status      TableStatus `json:"status" gorm:"not null;default:'Available'"`
	Capacity    int         `json:"capacity" gorm:"default:0"`
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"-"`
}

// TableRow is the /api/tables projection: a table plus the id of its Open
// order, when one exists.
type TableRow struct {
	ID            uint        `json:"table_id"`
	TableNumber   int         `json:"table_number"`
	Status        TableStatus `json:"status"`
	Capacity      int         `json:"capacity"`
	ActiveOrderID *uint       `json:"active_order_id"`
}
