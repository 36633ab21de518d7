package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopmanager/internal/customers"
	"shopmanager/internal/inventory"
	"shopmanager/internal/receipt"
	"shopmanager/internal/repairs"
	"shopmanager/internal/sales"
)

// Dependencies carries the wired services the HTTP layer works against.
// Storage backends are chosen by the caller (Postgres in production,
// in-memory for development and tests) and injected here, never constructed
// inside the handlers.
type Dependencies struct {
	Inventory *inventory.Service
	Sales     *sales.Service
	Customers *customers.Service
	Repairs   *repairs.Service
	Carts     *sales.CartStore
	Receipts  *receipt.Generator
	Logger    *zap.Logger
}

// InitRoutes registers all endpoints on the given Gin engine: product,
// customer, and repair order CRUD, the cart/checkout flow, sales history,
// receipts, and the report endpoints.
func InitRoutes(e *gin.Engine, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	products := newProductHandler(deps.Inventory, logger)
	custs := newCustomerHandler(deps.Customers, logger)
	reps := newRepairHandler(deps.Repairs, logger)
	checkout := newCheckoutHandler(deps.Sales, deps.Inventory, deps.Carts, deps.Receipts, logger)

	e.POST("/products", products.handleCreateProduct)
	e.GET("/products", products.handleGetProducts)
	e.GET("/products/:id", products.handleGetProduct)
	e.PUT("/products/:id", products.handleUpdateProduct)
	e.DELETE("/products/:id", products.handleDeleteProduct)

	e.POST("/customers", custs.handleCreateCustomer)
	e.GET("/customers", custs.handleGetCustomers)
	e.GET("/customers/:id", custs.handleGetCustomer)
	e.PUT("/customers/:id", custs.handleUpdateCustomer)
	e.DELETE("/customers/:id", custs.handleDeleteCustomer)

	e.POST("/repairs", reps.handleCreateRepairOrder)
	e.GET("/repairs", reps.handleGetRepairOrders)
	e.GET("/repairs/:id", reps.handleGetRepairOrder)
	e.PATCH("/repairs/:id/status", reps.handlePatchStatus)

	e.POST("/carts", checkout.handleCreateCart)
	e.GET("/carts/:id", checkout.handleGetCart)
	e.DELETE("/carts/:id", checkout.handleDeleteCart)
	e.POST("/carts/:id/items", checkout.handleAddItem)
	e.DELETE("/carts/:id/items/:product_id", checkout.handleRemoveItem)
	e.POST("/carts/:id/checkout", checkout.handleCheckout)

	e.GET("/sales", checkout.handleGetSales)
	e.GET("/sales/:id", checkout.handleGetSale)
	e.GET("/sales/:id/receipt", checkout.handleGetReceipt)

	e.GET("/reports/daily", checkout.handleGetSummary)
	e.GET("/reports/repairs", reps.handleGetStats)
	e.GET("/reports/low-stock", products.handleLowStock)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
