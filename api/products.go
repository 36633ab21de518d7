package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopmanager/internal/inventory"
)

// productHandler implements the HTTP handlers for product inventory.
type productHandler struct {
	service *inventory.Service
	logger  *zap.Logger
}

func newProductHandler(service *inventory.Service, logger *zap.Logger) *productHandler {
	return &productHandler{service: service, logger: logger}
}

type productRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (h *productHandler) handleCreateProduct(ctx *gin.Context) {
	var req productRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.service.CreateProduct(ctx.Request.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		if errors.Is(err, inventory.ErrNameRequired) ||
			errors.Is(err, inventory.ErrInvalidPrice) ||
			errors.Is(err, inventory.ErrInvalidQuantity) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to create product", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

func (h *productHandler) handleGetProducts(ctx *gin.Context) {
	products, err := h.service.Products(ctx.Request.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (h *productHandler) handleGetProduct(ctx *gin.Context) {
	product, err := h.service.Product(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (h *productHandler) handleUpdateProduct(ctx *gin.Context) {
	var req productRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.service.UpdateProduct(ctx.Request.Context(), ctx.Param("id"), req.Name, req.Price, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, inventory.ErrNameRequired),
			errors.Is(err, inventory.ErrInvalidPrice),
			errors.Is(err, inventory.ErrInvalidQuantity):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to update product", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		}
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (h *productHandler) handleDeleteProduct(ctx *gin.Context) {
	if err := h.service.DeleteProduct(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("failed to delete product", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// handleLowStock lists products at or below the given threshold (default 5).
func (h *productHandler) handleLowStock(ctx *gin.Context) {
	threshold := 5
	if raw := ctx.Query("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
			return
		}
		threshold = parsed
	}

	products, err := h.service.LowStock(ctx.Request.Context(), threshold)
	if err != nil {
		h.logger.Error("failed to list low stock products", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list low stock products"})
		return
	}
	ctx.JSON(http.StatusOK, products)
}
