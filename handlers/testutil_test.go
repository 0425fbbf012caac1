package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"table-order-api/config"
	"table-order-api/handlers"
	"table-order-api/models"
	"table-order-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testPricing() config.Pricing {
	return config.Pricing{
		AdultPrice:  decimal.NewFromInt(299),
		ChildPrice:  decimal.NewFromInt(199),
		RefillPrice: decimal.NewFromInt(29),
	}
}

// newTestServer wires the full router against a fresh in-memory database.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// a second pooled connection would see its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.MenuItem{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderEvent{},
		&models.Bill{},
	))
	require.NoError(t, config.EnsureIndexes(db))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.New(db, testPricing(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	routes.SetupRoutes(r, h)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func seedTable(t *testing.T, db *gorm.DB, number int) models.Table {
	t.Helper()
	table := models.Table{TableNumber: number, Status: models.TableAvailable}
	require.NoError(t, db.Create(&table).Error)
	return table
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price int64, buffet bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:     name,
		Category: "Mains",
		Price:    decimal.NewFromInt(price),
		IsBuffet: buffet,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func openOrder(t *testing.T, r *gin.Engine, tableNumber, adults, children int) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/orders/open", gin.H{
		"table_number": tableNumber,
		"adults":       adults,
		"children":     children,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		OrderID uint `json:"orderId"`
	}
	decodeBody(t, w, &resp)
	require.NotZero(t, resp.OrderID)
	return resp.OrderID
}
