package config

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"table-order-api/models"
)

// InitDB opens the database, migrates the schema and installs the data-layer
// guard that keeps table occupancy consistent with open checks. The returned
// handle is passed to the handlers at startup; there is no package-level
// database state.
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.MenuItem{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderEvent{},
		&models.Bill{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	if err := EnsureIndexes(db); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureIndexes creates the indexes AutoMigrate cannot express. The partial
// unique index enforces "at most one Open order per table" in the database
// itself, closing the race two cashiers could otherwise win together.
func EnsureIndexes(db *gorm.DB) error {
	err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_open_order_per_table
		 ON orders(table_id) WHERE status = 'Open'`,
	).Error
	if err != nil {
		return fmt.Errorf("create open-order index: %w", err)
	}
	return nil
}
