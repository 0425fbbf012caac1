package handlers

import (
	"net/http"

	"table-order-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListMenu returns the catalog. `?category=` narrows to one tab of the menu UI.
func (h *Handler) ListMenu(c *gin.Context) {
	var items []models.MenuItem
	query := h.db
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("id asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

type CreateMenuItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	IsBuffet bool            `json:"is_buffet"`
	ImgURL   string          `json:"img_url"`
}

// CreateMenuItem adds a catalog entry. Buffet-included dishes are created
// with a zero price; the buffet flag is what marks them.
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
		return
	}

	item := models.MenuItem{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		IsBuffet: req.IsBuffet,
		Image:    req.ImgURL,
	}
	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
}

// DeleteMenuItem removes a catalog entry. Deletion is refused while an open
// check still holds a line for the item; closed checks keep their own name
// and price snapshots, so historical references never block.
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := h.db.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var openRefs int64
	err := h.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.menu_item_id = ? AND orders.status = ?", item.ID, models.OrderOpen).
		Count(&openRefs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check menu item references"})
		return
	}
	if openRefs > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Menu item is on an open order"})
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
