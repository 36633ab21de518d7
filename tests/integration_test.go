package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"shopmanager/api"
	"shopmanager/internal/customers"
	"shopmanager/internal/inventory"
	"shopmanager/internal/receipt"
	"shopmanager/internal/repairs"
	"shopmanager/internal/sales"
)

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	logger := zaptest.NewLogger(t)
	products := inventory.NewLocalStorage()
	inventoryService := inventory.NewService(products, logger)
	salesService := sales.NewService(sales.NewLocalStorage(products), inventoryService, logger)

	api.InitRoutes(router, api.Dependencies{
		Inventory: inventoryService,
		Sales:     salesService,
		Customers: customers.NewService(customers.NewLocalStorage(), logger),
		Repairs:   repairs.NewService(repairs.NewLocalStorage(), logger),
		Carts:     sales.NewCartStore(),
		Receipts: receipt.NewGenerator(receipt.Identity{
			Name:    "Rama Watch & Mobile Shopee",
			Address: "Viman Nagar, Pune - 411014",
			Phone:   "+91-9815267856",
		}),
		Logger: logger,
	})
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewBuffer(b)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createProduct(t *testing.T, router *gin.Engine, name, price string, quantity int) inventory.Product {
	w := doJSON(router, http.MethodPost, "/products", map[string]interface{}{
		"name":     name,
		"price":    price,
		"quantity": quantity,
	})
	require.Equal(t, http.StatusCreated, w.Code, "expected HTTP 201 for product creation")

	var p inventory.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.NotEmpty(t, p.ID)
	return p
}

func createCart(t *testing.T, router *gin.Engine) string {
	w := doJSON(router, http.MethodPost, "/carts", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var cart struct {
		CartID string `json:"cart_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.NotEmpty(t, cart.CartID)
	return cart.CartID
}

// TestCheckoutHappyPath_FullFlow exercises the complete POS flow: product
// setup, cart assembly, checkout, sale lookup, and receipt download.
func TestCheckoutHappyPath_FullFlow(t *testing.T) {
	router := newTestRouter(t)

	product := createProduct(t, router, "Analog Watch", "5.00", 10)
	cartID := createCart(t, router)

	var saleID string

	t.Run("POST_AddItem", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, fmt.Sprintf("/carts/%s/items", cartID), map[string]interface{}{
			"product_id": product.ID,
			"quantity":   3,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var cart struct {
			Lines []sales.CartLine `json:"lines"`
			Total decimal.Decimal  `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 3, cart.Lines[0].Quantity)
		assert.True(t, cart.Total.Equal(decimal.NewFromFloat(15.00)), "expected cart total of 15.00")
	})

	t.Run("POST_Checkout", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, fmt.Sprintf("/carts/%s/checkout", cartID), nil)
		require.Equal(t, http.StatusCreated, w.Code, "expected HTTP 201 for successful checkout")

		var sale sales.Sale
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
		require.NotEmpty(t, sale.ID)
		assert.True(t, sale.Total.Equal(decimal.NewFromFloat(15.00)))
		require.Len(t, sale.Items, 1)
		assert.Equal(t, product.ID, sale.Items[0].ProductID)
		assert.Equal(t, 3, sale.Items[0].Quantity)
		assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.NewFromFloat(5.00)))
		saleID = sale.ID
	})

	if saleID == "" {
		t.Fatal("sale ID was not generated in POST_Checkout step")
	}

	t.Run("GET_StockDecremented", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/products/"+product.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var p inventory.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, 7, p.Quantity, "expected stock to drop from 10 to 7")
	})

	t.Run("GET_CartGone", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/carts/"+cartID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "expected the cart to be cleared after checkout")
	})

	t.Run("GET_Sale", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/sales/"+saleID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var sale sales.Sale
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
		assert.Equal(t, saleID, sale.ID)
		assert.True(t, sale.Total.Equal(decimal.NewFromFloat(15.00)))
	})

	t.Run("GET_Receipt", func(t *testing.T) {
		first := doJSON(router, http.MethodGet, fmt.Sprintf("/sales/%s/receipt", saleID), nil)
		require.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "application/pdf", first.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(first.Body.Bytes(), []byte("%PDF-")), "expected a PDF body")

		// a second render of the same persisted sale is byte-identical
		second := doJSON(router, http.MethodGet, fmt.Sprintf("/sales/%s/receipt", saleID), nil)
		require.Equal(t, http.StatusOK, second.Code)
		assert.True(t, bytes.Equal(first.Body.Bytes(), second.Body.Bytes()))
	})

	t.Run("GET_DailyReport", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/reports/daily", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var summaries []sales.DaySummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
		require.Len(t, summaries, 1)
		assert.Equal(t, 1, summaries[0].Transactions)
		assert.Equal(t, 3, summaries[0].ItemsSold)
		assert.True(t, summaries[0].TotalSales.Equal(decimal.NewFromFloat(15.00)))
	})
}

// TestAddItem_InsufficientStock covers add-time rejection: the requested
// quantity exceeds the product's stock and the cart stays empty.
func TestAddItem_InsufficientStock(t *testing.T) {
	router := newTestRouter(t)

	product := createProduct(t, router, "Charger", "15.00", 2)
	cartID := createCart(t, router)

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/carts/%s/items", cartID), map[string]interface{}{
		"product_id": product.ID,
		"quantity":   5,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		ProductID string `json:"product_id"`
		Available int    `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, product.ID, resp.ProductID)
	assert.Equal(t, 2, resp.Available)

	got := doJSON(router, http.MethodGet, "/carts/"+cartID, nil)
	require.Equal(t, http.StatusOK, got.Code)
	var cart struct {
		Lines []sales.CartLine `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &cart))
	assert.Empty(t, cart.Lines, "a rejected add must leave the cart unchanged")
}

// TestCheckout_StaleCart covers commit-time rejection: stock shrinks between
// add-to-cart and checkout, the checkout fails, and both the stock and the
// cart are unchanged.
func TestCheckout_StaleCart(t *testing.T) {
	router := newTestRouter(t)

	product := createProduct(t, router, "Watch", "5.00", 10)
	cartID := createCart(t, router)

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/carts/%s/items", cartID), map[string]interface{}{
		"product_id": product.ID,
		"quantity":   3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// another actor reduces the stock below the cart's quantity
	w = doJSON(router, http.MethodPut, "/products/"+product.ID, map[string]interface{}{
		"name":     "Watch",
		"price":    "5.00",
		"quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, fmt.Sprintf("/carts/%s/checkout", cartID), nil)
	require.Equal(t, http.StatusConflict, w.Code, "expected HTTP 409 for a stale cart")

	// stock unchanged, cart intact, no sale recorded
	got := doJSON(router, http.MethodGet, "/products/"+product.ID, nil)
	var p inventory.Product
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &p))
	assert.Equal(t, 1, p.Quantity)

	got = doJSON(router, http.MethodGet, "/carts/"+cartID, nil)
	assert.Equal(t, http.StatusOK, got.Code, "the cart must survive a failed checkout")

	got = doJSON(router, http.MethodGet, "/sales", nil)
	var history []sales.Sale
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &history))
	assert.Empty(t, history)
}

func TestCheckout_EmptyCart(t *testing.T) {
	router := newTestRouter(t)
	cartID := createCart(t, router)

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/carts/%s/checkout", cartID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "expected HTTP 400 for an empty cart")
}

func TestCustomersAndRepairs_Flow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/customers", map[string]interface{}{
		"name":           "Asha Verma",
		"contact_number": "+91-9812345678",
		"address":        "Viman Nagar, Pune",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var customer customers.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))

	w = doJSON(router, http.MethodPost, "/repairs", map[string]interface{}{
		"customer_id":       customer.ID,
		"product_details":   "Titan analog watch",
		"issue_description": "strap broken",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order repairs.RepairOrder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, "pending", order.Status)

	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/repairs/%s/status", order.ID), map[string]string{
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPatch, fmt.Sprintf("/repairs/%s/status", order.ID), map[string]string{
		"status": "returned",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "expected HTTP 400 for a status outside the enum")

	w = doJSON(router, http.MethodGet, "/reports/repairs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var counts map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, 1, counts["in_progress"])
}

func TestLowStockReport(t *testing.T) {
	router := newTestRouter(t)

	createProduct(t, router, "Plenty", "1.00", 50)
	scarce := createProduct(t, router, "Scarce", "1.00", 3)

	w := doJSON(router, http.MethodGet, "/reports/low-stock?threshold=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var low []inventory.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &low))
	require.Len(t, low, 1)
	assert.Equal(t, scarce.ID, low[0].ID)
}
