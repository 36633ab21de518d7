package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopmanager/internal/inventory"
	"shopmanager/internal/receipt"
	"shopmanager/internal/sales"
)

// checkoutHandler holds the checkout flow: carts, sales, and receipts.
type checkoutHandler struct {
	salesService     *sales.Service
	inventoryService *inventory.Service
	carts            *sales.CartStore
	receipts         *receipt.Generator
	logger           *zap.Logger
}

// newCheckoutHandler creates a new checkout handler.
func newCheckoutHandler(salesService *sales.Service, inventoryService *inventory.Service, carts *sales.CartStore, receipts *receipt.Generator, logger *zap.Logger) *checkoutHandler {
	return &checkoutHandler{
		salesService:     salesService,
		inventoryService: inventoryService,
		carts:            carts,
		receipts:         receipts,
		logger:           logger,
	}
}

type cartView struct {
	CartID string           `json:"cart_id"`
	Lines  []sales.CartLine `json:"lines"`
	Total  decimal.Decimal  `json:"total"`
}

func viewOf(cart *sales.Cart) cartView {
	return cartView{CartID: cart.ID, Lines: cart.Lines(), Total: cart.Total()}
}

// handleCreateCart handles the POST /carts endpoint.
func (h *checkoutHandler) handleCreateCart(ctx *gin.Context) {
	cart := h.carts.Create()
	ctx.JSON(http.StatusCreated, viewOf(cart))
}

// handleGetCart handles the GET /carts/:id endpoint.
func (h *checkoutHandler) handleGetCart(ctx *gin.Context) {
	cart, err := h.carts.Get(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}
	ctx.JSON(http.StatusOK, viewOf(cart))
}

// handleAddItem handles the POST /carts/:id/items endpoint. The quantity is
// validated against the product's current stock; a stale read here is
// tolerated because checkout re-validates authoritatively.
func (h *checkoutHandler) handleAddItem(ctx *gin.Context) {
	cart, err := h.carts.Get(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}

	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.inventoryService.Product(ctx.Request.Context(), req.ProductID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	if err := cart.Add(product, req.Quantity); err != nil {
		var stockErr *inventory.InsufficientStockError
		switch {
		case errors.Is(err, sales.ErrInvalidQuantity):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be greater than zero"})
		case errors.As(err, &stockErr):
			ctx.JSON(http.StatusConflict, gin.H{
				"error":      "insufficient stock",
				"product_id": stockErr.ProductID,
				"requested":  stockErr.Requested,
				"available":  stockErr.Available,
			})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		}
		return
	}

	ctx.JSON(http.StatusOK, viewOf(cart))
}

// handleRemoveItem handles the DELETE /carts/:id/items/:product_id endpoint.
func (h *checkoutHandler) handleRemoveItem(ctx *gin.Context) {
	cart, err := h.carts.Get(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}
	cart.Remove(ctx.Param("product_id"))
	ctx.JSON(http.StatusOK, viewOf(cart))
}

// handleDeleteCart handles the DELETE /carts/:id endpoint (explicit cancel).
func (h *checkoutHandler) handleDeleteCart(ctx *gin.Context) {
	h.carts.Delete(ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}

// handleCheckout handles the POST /carts/:id/checkout endpoint.
func (h *checkoutHandler) handleCheckout(ctx *gin.Context) {
	cart, err := h.carts.Get(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}

	var req struct {
		CustomerID *string `json:"customer_id"`
	}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
			return
		}
	}

	sale, err := h.salesService.Checkout(ctx.Request.Context(), cart, req.CustomerID)
	if err != nil {
		var stockErr *inventory.InsufficientStockError
		switch {
		case errors.Is(err, sales.ErrEmptyCart):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		case errors.As(err, &stockErr):
			ctx.JSON(http.StatusConflict, gin.H{
				"error":      "insufficient stock",
				"product_id": stockErr.ProductID,
				"requested":  stockErr.Requested,
				"available":  stockErr.Available,
			})
		case errors.Is(err, inventory.ErrNotFound):
			ctx.JSON(http.StatusConflict, gin.H{"error": "product no longer available"})
		case errors.Is(err, sales.ErrPersistence):
			// nothing was written; the cart is intact and the request can be retried
			ctx.JSON(http.StatusInternalServerError, gin.H{
				"error":     "sale could not be persisted, please retry",
				"retryable": true,
			})
		default:
			h.logger.Error("failed to complete checkout", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete checkout"})
		}
		return
	}

	h.carts.Delete(cart.ID)
	ctx.JSON(http.StatusCreated, sale)
}

// handleGetSales handles the GET /sales endpoint.
func (h *checkoutHandler) handleGetSales(ctx *gin.Context) {
	history, err := h.salesService.History(ctx.Request.Context())
	if err != nil {
		h.logger.Error("failed to list sales", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sales"})
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// handleGetSale handles the GET /sales/:id endpoint.
func (h *checkoutHandler) handleGetSale(ctx *gin.Context) {
	sale, err := h.salesService.Find(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

// handleGetSummary handles the GET /sales/summary endpoint.
func (h *checkoutHandler) handleGetSummary(ctx *gin.Context) {
	summaries, err := h.salesService.DailySummary(ctx.Request.Context())
	if err != nil {
		h.logger.Error("failed to build daily summary", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build daily summary"})
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// handleGetReceipt handles the GET /sales/:id/receipt endpoint. A render
// failure does not roll anything back: the sale is already durable and the
// receipt can be regenerated at any time.
func (h *checkoutHandler) handleGetReceipt(ctx *gin.Context) {
	sale, err := h.salesService.Find(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		return
	}

	var buf bytes.Buffer
	if err := h.receipts.Render(sale, &buf); err != nil {
		h.logger.Error("failed to render receipt", zap.String("sale_id", sale.ID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "receipt generation failed; the sale is recorded and the receipt can be regenerated",
			"sale_id": sale.ID,
		})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%s.pdf", sale.ID))
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
