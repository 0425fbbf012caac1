package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"table-order-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCreateAndList(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/menu", gin.H{
		"name":      "River Shrimp",
		"category":  "Seafood",
		"price":     89,
		"is_buffet": false,
		"img_url":   "https://example.com/shrimp.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/menu", gin.H{
		"name":      "Pork Belly",
		"category":  "Mains",
		"price":     0,
		"is_buffet": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.MenuItem
	decodeBody(t, w, &items)
	require.Len(t, items, 2)
	assert.Equal(t, "River Shrimp", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(89)))
	assert.Equal(t, "https://example.com/shrimp.jpg", items[0].Image)
	assert.True(t, items[1].IsBuffet)
	assert.True(t, items[1].Price.IsZero())

	// category filter narrows to one menu tab
	w = doJSON(t, r, http.MethodGet, "/api/menu?category=Seafood", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "River Shrimp", items[0].Name)
}

func TestMenuCreateValidation(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/menu", gin.H{"category": "Mains"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/menu", gin.H{"name": "Bad Dish", "price": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuDeleteBlockedByOpenOrder(t *testing.T) {
	r, db := newTestServer(t)
	seedTable(t, db, 1)
	shrimp := seedMenuItem(t, db, "River Shrimp", 89, false)
	orderID := openOrder(t, r, 1, 1, 0)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/orders/%d/items", orderID), gin.H{
		"items": []gin.H{{"id": shrimp.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// referenced by an open check → refuse
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/menu/%d", shrimp.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// once the check is closed, historical lines keep their snapshots
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/orders/%d/checkout", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/menu/%d", shrimp.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.MenuItem{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestMenuDeleteNotFound(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodDelete, "/api/menu/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
