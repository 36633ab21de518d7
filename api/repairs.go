package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopmanager/internal/repairs"
)

// repairHandler implements the HTTP handlers for repair orders.
type repairHandler struct {
	service *repairs.Service
	logger  *zap.Logger
}

func newRepairHandler(service *repairs.Service, logger *zap.Logger) *repairHandler {
	return &repairHandler{service: service, logger: logger}
}

func (h *repairHandler) handleCreateRepairOrder(ctx *gin.Context) {
	var req struct {
		CustomerID       string `json:"customer_id"`
		ProductDetails   string `json:"product_details"`
		IssueDescription string `json:"issue_description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	order, err := h.service.Create(ctx.Request.Context(), req.CustomerID, req.ProductDetails, req.IssueDescription)
	if err != nil {
		if errors.Is(err, repairs.ErrCustomerRequired) || errors.Is(err, repairs.ErrDetailsRequired) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to create repair order", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create repair order"})
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

func (h *repairHandler) handleGetRepairOrders(ctx *gin.Context) {
	orders, err := h.service.GetAll(ctx.Request.Context())
	if err != nil {
		h.logger.Error("failed to list repair orders", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list repair orders"})
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

func (h *repairHandler) handleGetRepairOrder(ctx *gin.Context) {
	order, err := h.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "repair order not found"})
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// handlePatchStatus handles the PATCH /repairs/:id/status endpoint.
func (h *repairHandler) handlePatchStatus(ctx *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repairs.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "repair order not found"})
		case errors.Is(err, repairs.ErrInvalidStatus):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
		default:
			h.logger.Error("failed to update repair order status", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

func (h *repairHandler) handleGetStats(ctx *gin.Context) {
	counts, err := h.service.StatusCounts(ctx.Request.Context())
	if err != nil {
		h.logger.Error("failed to count repair orders", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count repair orders"})
		return
	}
	ctx.JSON(http.StatusOK, counts)
}
