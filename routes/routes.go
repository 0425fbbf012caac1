package routes

import (
	"table-order-api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full HTTP surface. There is no authentication:
// the cashier, customer and kitchen apps all talk to the same open API.
func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	api := r.Group("/api")
	{
		api.GET("/status", h.Status)

		// ── Catalog (admin menu management) ────────────────────────────
		api.GET("/menu", h.ListMenu)
		api.POST("/menu", h.CreateMenuItem)
		api.DELETE("/menu/:id", h.DeleteMenuItem)

		// ── Cashier app ────────────────────────────────────────────────
		api.GET("/tables", h.ListTables)
		api.POST("/tables", h.CreateTable)
		api.POST("/tables/:id/reset", h.ResetTable)

		// ── Order lifecycle ────────────────────────────────────────────
		api.POST("/orders/open", h.OpenTable)
		api.GET("/orders/:id", h.GetOrder)
		api.POST("/orders/:id/items", h.AddItems)
		api.POST("/orders/:id/checkout", h.Checkout)

		// ── Kitchen display ────────────────────────────────────────────
		api.GET("/kitchen/pending", h.ListPending)
		api.PUT("/kitchen/serve/batch/:key", h.ServeBatch)
		api.PUT("/kitchen/items/:id/status", h.UpdateItemStatus)
	}
}
