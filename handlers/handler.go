package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"table-order-api/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler carries the process-wide resources every endpoint needs. The
// database handle is injected at startup; there is no package-level state.
type Handler struct {
	db      *gorm.DB
	pricing config.Pricing
	logger  *slog.Logger
}

func New(db *gorm.DB, pricing config.Pricing, logger *slog.Logger) *Handler {
	return &Handler{db: db, pricing: pricing, logger: logger}
}

// Status reports liveness for the polling frontends.
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "time": time.Now()})
}

// Sentinel errors raised inside transactions so the handler can map them to
// the right HTTP status after rollback.
var (
	errTableOccupied   = errors.New("table is already occupied")
	errOrderClosed     = errors.New("order is already closed")
	errMenuItemUnknown = errors.New("menu item not found")
)

// isUniqueViolation reports whether err is a unique-index violation. The
// sqlite driver does not translate these into gorm's sentinel, so the raw
// message is checked as well.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
