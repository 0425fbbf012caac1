package handlers

import (
	"net/http"
	"time"

	"table-order-api/models"
	"table-order-api/statemachine"

	"github.com/gin-gonic/gin"
)

// KitchenBatch is one cart submission as the kitchen sees it.
type KitchenBatch struct {
	TicketID    string        `json:"ticket_id"`
	OrderID     uint          `json:"order_id"`
	TableNumber int           `json:"table_number"`
	SubmittedAt time.Time     `json:"submitted_at"`
	Items       []KitchenItem `json:"items"`
}

type KitchenItem struct {
	ID       uint              `json:"id"`
	MenuItem string            `json:"menu_item"`
	Quantity int               `json:"quantity"`
	Status   models.ItemStatus `json:"status"`
	Note     string            `json:"note"`
}

// ListPending returns every Pending or Preparing line grouped by submission
// ticket, oldest first — the kitchen display queue. Grouping follows the
// ticket id minted at submission time, never timestamps.
func (h *Handler) ListPending(c *gin.Context) {
	type pendingRow struct {
		ID          uint
		TicketID    string
		OrderID     uint
		TableNumber int
		Name        string
		Quantity    int
		Status      models.ItemStatus
		Note        string
		CreatedAt   time.Time
	}

	var rows []pendingRow
	err := h.db.Model(&models.OrderItem{}).
		Select(`order_items.id, order_items.ticket_id, order_items.order_id,
			tables.table_number, order_items.name, order_items.quantity,
			order_items.status, order_items.note, order_items.created_at`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN tables ON tables.id = orders.table_id").
		Where("order_items.status IN ?", []models.ItemStatus{models.ItemPending, models.ItemPreparing}).
		Order("order_items.created_at ASC, order_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load kitchen queue"})
		return
	}

	batches := make([]KitchenBatch, 0)
	index := map[string]int{}
	for _, row := range rows {
		i, ok := index[row.TicketID]
		if !ok {
			i = len(batches)
			index[row.TicketID] = i
			batches = append(batches, KitchenBatch{
				TicketID:    row.TicketID,
				OrderID:     row.OrderID,
				TableNumber: row.TableNumber,
				SubmittedAt: row.CreatedAt,
				Items:       []KitchenItem{},
			})
		}
		batches[i].Items = append(batches[i].Items, KitchenItem{
			ID:       row.ID,
			MenuItem: row.Name,
			Quantity: row.Quantity,
			Status:   row.Status,
			Note:     row.Note,
		})
	}

	c.JSON(http.StatusOK, batches)
}

type ServeBatchRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// ServeBatch marks the given lines Served. Lines already Served or Cancelled
// are skipped, so retries and double-taps are harmless.
func (h *Handler) ServeBatch(c *gin.Context) {
	var req ServeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.db.Model(&models.OrderItem{}).
		Where("id IN ? AND status IN ?", req.IDs,
			[]models.ItemStatus{models.ItemPending, models.ItemPreparing}).
		Update("status", models.ItemServed)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serve items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"batch":   c.Param("key"),
		"served":  result.RowsAffected,
	})
}

type UpdateItemStatusRequest struct {
	Status models.ItemStatus `json:"status" binding:"required"`
}

// UpdateItemStatus moves one line through the kitchen lifecycle
// (Pending → Preparing → Served), validated against the transition table.
// Requesting the current status is a no-op, not an error.
func (h *Handler) UpdateItemStatus(c *gin.Context) {
	var req UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.OrderItem
	if err := h.db.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		return
	}
	if item.Status == req.Status {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": item.Status})
		return
	}

	if err := statemachine.CanTransitionItem(item.Status, req.Status, statemachine.ActorKitchen); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":             "Invalid status transition",
			"current_status":    item.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidItemTransitionsFrom(item.Status),
		})
		return
	}

	if err := h.db.Model(&item).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}
