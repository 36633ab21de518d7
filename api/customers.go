package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopmanager/internal/customers"
)

// customerHandler implements the HTTP handlers for customer records.
type customerHandler struct {
	service *customers.Service
	logger  *zap.Logger
}

func newCustomerHandler(service *customers.Service, logger *zap.Logger) *customerHandler {
	return &customerHandler{service: service, logger: logger}
}

type customerRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

func (h *customerHandler) handleCreateCustomer(ctx *gin.Context) {
	var req customerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	customer, err := h.service.Create(ctx.Request.Context(), req.Name, req.ContactNumber, req.Address)
	if err != nil {
		if errors.Is(err, customers.ErrNameRequired) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to create customer", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer"})
		return
	}
	ctx.JSON(http.StatusCreated, customer)
}

func (h *customerHandler) handleGetCustomers(ctx *gin.Context) {
	all, err := h.service.GetAll(ctx.Request.Context())
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list customers"})
		return
	}
	ctx.JSON(http.StatusOK, all)
}

func (h *customerHandler) handleGetCustomer(ctx *gin.Context) {
	customer, err := h.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	ctx.JSON(http.StatusOK, customer)
}

func (h *customerHandler) handleUpdateCustomer(ctx *gin.Context) {
	var req customerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	customer, err := h.service.Update(ctx.Request.Context(), ctx.Param("id"), req.Name, req.ContactNumber, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		case errors.Is(err, customers.ErrNameRequired):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to update customer", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update customer"})
		}
		return
	}
	ctx.JSON(http.StatusOK, customer)
}

func (h *customerHandler) handleDeleteCustomer(ctx *gin.Context) {
	if err := h.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		h.logger.Error("failed to delete customer", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete customer"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}
