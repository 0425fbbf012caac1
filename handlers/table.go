package handlers

import (
	"errors"
	"net/http"
	"time"

	"table-order-api/models"
	"table-order-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListTables returns every table with the id of its Open order, if any. The
// cashier app renders its floor plan from this.
func (h *Handler) ListTables(c *gin.Context) {
	var rows []models.TableRow
	err := h.db.Model(&models.Table{}).
		Select("tables.id, tables.table_number, tables.status, tables.capacity, orders.id AS active_order_id").
		Joins("LEFT JOIN orders ON orders.table_id = tables.id AND orders.status = ?", models.OrderOpen).
		Order("tables.table_number ASC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tables"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

type CreateTableRequest struct {
	TableNumber int `json:"table_number" binding:"required,gt=0"`
}

// CreateTable registers a physical table.
func (h *Handler) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Status:      models.TableAvailable,
	}
	if err := h.db.Create(&table).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Table number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "table": table})
}

// ResetTable force-clears a stuck table: the table goes back to Available
// and any Open order on it is closed, in one transaction. Safe to call when
// no open order exists.
func (h *Handler) ResetTable(c *gin.Context) {
	var table models.Table
	if err := h.db.First(&table, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("table_id = ? AND status = ?", table.ID, models.OrderOpen).First(&order).Error
		switch {
		case err == nil:
			if err := statemachine.CanTransitionOrder(order.Status, models.OrderClosed, statemachine.ActorSystem); err != nil {
				return err
			}
			now := time.Now()
			if err := tx.Model(&order).Updates(map[string]interface{}{
				"status":   models.OrderClosed,
				"end_time": now,
			}).Error; err != nil {
				return err
			}
			event := models.OrderEvent{
				OrderID:    order.ID,
				FromStatus: models.OrderOpen,
				ToStatus:   models.OrderClosed,
				Note:       "[RESET] Table force-cleared by cashier",
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// nothing to close, only the table needs clearing
		default:
			return err
		}

		return tx.Model(&table).Updates(map[string]interface{}{
			"status":   models.TableAvailable,
			"capacity": 0,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
