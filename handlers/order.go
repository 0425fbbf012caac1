package handlers

import (
	"errors"
	"net/http"
	"time"

	"table-order-api/billing"
	"table-order-api/models"
	"table-order-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OpenTableRequest struct {
	TableNumber int `json:"table_number" binding:"required,gt=0"`
	Adults      int `json:"adults" binding:"min=0"`
	Children    int `json:"children" binding:"min=0"`
}

// OpenTable seats a party: it creates the Open order with price snapshots
// and marks the table Occupied, all in one transaction. An already occupied
// table is a conflict — never silently reopened or double-booked.
func (h *Handler) OpenTable(c *gin.Context) {
	var req OpenTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Adults+req.Children < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one guest is required"})
		return
	}

	var order models.Order
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Where("table_number = ?", req.TableNumber).First(&table).Error; err != nil {
			return err
		}
		if table.Status == models.TableOccupied {
			return errTableOccupied
		}

		order = models.Order{
			TableID:        table.ID,
			Status:         models.OrderOpen,
			StartTime:      time.Now(),
			NumAdults:      req.Adults,
			NumChildren:    req.Children,
			NumOfCustomers: req.Adults + req.Children,
			AdultPrice:     h.pricing.AdultPrice,
			ChildPrice:     h.pricing.ChildPrice,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Model(&table).Updates(map[string]interface{}{
			"status":   models.TableOccupied,
			"capacity": order.NumOfCustomers,
		}).Error; err != nil {
			return err
		}

		event := models.OrderEvent{
			OrderID:  order.ID,
			ToStatus: models.OrderOpen,
			Note:     "Table opened by cashier",
		}
		return tx.Create(&event).Error
	})

	switch {
	case err == nil:
		h.logger.Info("order opened", "order_id", order.ID, "table_number", req.TableNumber)
		c.JSON(http.StatusOK, gin.H{"success": true, "orderId": order.ID})
	case errors.Is(err, errTableOccupied):
		c.JSON(http.StatusConflict, gin.H{"error": "Table is already occupied"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
	case isUniqueViolation(err):
		// two cashiers raced past the status check; the partial index wins
		c.JSON(http.StatusConflict, gin.H{"error": "Table is already occupied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open table"})
	}
}

// GetOrder returns the check, its non-cancelled lines, the audit trail and a
// server-computed receipt breakdown. Every displayed total comes from the
// same billing computation that checkout persists.
func (h *Handler) GetOrder(c *gin.Context) {
	var order models.Order
	if err := h.db.Preload("Table").Preload("Events").First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	var items []models.OrderItem
	err := h.db.Preload("MenuItem").
		Where("order_id = ? AND status <> ?", order.ID, models.ItemCancelled).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order items"})
		return
	}

	charges := billing.Compute(order, items, h.pricing.RefillPrice)

	c.JSON(http.StatusOK, gin.H{
		"order":        order,
		"table_number": order.Table.TableNumber,
		"items":        items,
		"charges":      charges,
	})
}

type AddItemsRequest struct {
	Items []struct {
		ID       uint   `json:"id" binding:"required"`
		Quantity int    `json:"quantity" binding:"required,gt=0"`
		Note     string `json:"note"`
	} `json:"items" binding:"required,min=1"`
}

// AddItems appends one cart submission to an open check. Every line gets the
// same freshly minted ticket id, snapshots the menu name and unit price, and
// all lines land together or not at all.
func (h *Handler) AddItems(c *gin.Context) {
	var req AddItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menuIDs := make([]uint, 0, len(req.Items))
	for _, line := range req.Items {
		menuIDs = append(menuIDs, line.ID)
	}

	ticketID := uuid.NewString()
	// The status check must see the same snapshot the insert commits into;
	// a checkout landing in between would otherwise leave unbilled lines on
	// a closed check.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, c.Param("id")).Error; err != nil {
			return err
		}
		if order.Status != models.OrderOpen {
			return errOrderClosed
		}

		var menuItems []models.MenuItem
		if err := tx.Where("id IN ?", menuIDs).Find(&menuItems).Error; err != nil {
			return err
		}
		byID := make(map[uint]models.MenuItem, len(menuItems))
		for _, m := range menuItems {
			byID[m.ID] = m
		}

		lines := make([]models.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			menuItem, ok := byID[line.ID]
			if !ok {
				return errMenuItemUnknown
			}
			lines = append(lines, models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: menuItem.ID,
				TicketID:   ticketID,
				Name:       menuItem.Name,
				UnitPrice:  menuItem.Price,
				Quantity:   line.Quantity,
				Status:     models.ItemPending,
				Note:       line.Note,
			})
		}
		return tx.Create(&lines).Error
	})

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "ticket_id": ticketID})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, errOrderClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Order is already closed"})
	case errors.Is(err, errMenuItemUnknown):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add items"})
	}
}

type CheckoutRequest struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Checkout closes the check: the grand total is recomputed from stored
// state, the table is released and the bill snapshot written, atomically.
// The client may send its displayed total as a hint, but the persisted bill
// is always the server computation.
func (h *Handler) Checkout(c *gin.Context) {
	// The hint is non-authoritative; a missing or malformed body is not an error.
	var req CheckoutRequest
	_ = c.ShouldBindJSON(&req)

	var bill models.Bill
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, c.Param("id")).Error; err != nil {
			return err
		}
		if err := statemachine.CanTransitionOrder(order.Status, models.OrderClosed, statemachine.ActorCashier); err != nil {
			return errOrderClosed
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			return err
		}
		charges := billing.Compute(order, items, h.pricing.RefillPrice)
		if !req.TotalAmount.IsZero() && !req.TotalAmount.Equal(charges.GrandTotal) {
			h.logger.Warn("client total mismatch",
				"order_id", order.ID,
				"client_total", req.TotalAmount.String(),
				"server_total", charges.GrandTotal.String(),
			)
		}

		now := time.Now()
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"status":   models.OrderClosed,
			"end_time": now,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Table{}).Where("id = ?", order.TableID).Updates(map[string]interface{}{
			"status":   models.TableAvailable,
			"capacity": 0,
		}).Error; err != nil {
			return err
		}

		bill = models.Bill{OrderID: order.ID, TotalAmount: charges.GrandTotal}
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}

		event := models.OrderEvent{
			OrderID:    order.ID,
			FromStatus: models.OrderOpen,
			ToStatus:   models.OrderClosed,
			Note:       "Checked out by cashier",
		}
		return tx.Create(&event).Error
	})

	switch {
	case err == nil:
		h.logger.Info("order checked out", "order_id", bill.OrderID, "total", bill.TotalAmount.String())
		c.JSON(http.StatusOK, gin.H{"success": true, "bill": bill})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, errOrderClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Order is already closed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
	}
}
