package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"table-order-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTables(t *testing.T) {
	r, db := newTestServer(t)
	seedTable(t, db, 2)
	seedTable(t, db, 1)
	orderID := openOrder(t, r, 2, 2, 0)

	w := doJSON(t, r, http.MethodGet, "/api/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []models.TableRow
	decodeBody(t, w, &rows)
	require.Len(t, rows, 2)

	// sorted by table number, not creation order
	assert.Equal(t, 1, rows[0].TableNumber)
	assert.Equal(t, models.TableAvailable, rows[0].Status)
	assert.Nil(t, rows[0].ActiveOrderID)

	assert.Equal(t, 2, rows[1].TableNumber)
	assert.Equal(t, models.TableOccupied, rows[1].Status)
	require.NotNil(t, rows[1].ActiveOrderID)
	assert.Equal(t, orderID, *rows[1].ActiveOrderID)
}

func TestCreateTable(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/tables", gin.H{"table_number": 12})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// duplicate table numbers are rejected
	w = doJSON(t, r, http.MethodPost, "/api/tables", gin.H{"table_number": 12})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/tables", gin.H{"table_number": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetTableWithOpenOrder(t *testing.T) {
	r, db := newTestServer(t)
	table := seedTable(t, db, 4)
	orderID := openOrder(t, r, 4, 2, 1)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/tables/%d/reset", table.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Table
	require.NoError(t, db.First(&got, table.ID).Error)
	assert.Equal(t, models.TableAvailable, got.Status)
	assert.Equal(t, 0, got.Capacity)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderClosed, order.Status)
	assert.NotNil(t, order.EndTime)

	// the forced close leaves an audit row
	var event models.OrderEvent
	require.NoError(t, db.Where("order_id = ? AND to_status = ?", orderID, models.OrderClosed).First(&event).Error)
	assert.Contains(t, event.Note, "RESET")

	// the table can be opened again afterwards
	openOrder(t, r, 4, 1, 0)
}

func TestResetTableWithoutOrder(t *testing.T) {
	r, db := newTestServer(t)
	table := seedTable(t, db, 10)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/tables/%d/reset", table.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Table
	require.NoError(t, db.First(&got, table.ID).Error)
	assert.Equal(t, models.TableAvailable, got.Status)
	assert.Equal(t, 0, got.Capacity)
}

func TestResetTableNotFound(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/api/tables/999/reset", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
