package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"filesolved/internal/adapter/http/dto"
	"filesolved/internal/core/ports"
	"filesolved/pkg/apperror"
	"filesolved/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles customer-facing order endpoints.
type OrderHandler struct {
	orderSvc ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc ports.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// Create handles POST /api/v1/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	fileID, err := uuid.Parse(req.FileID)
	if err != nil {
		response.Error(c, apperror.Validation("fileId must be a valid UUID"))
		return
	}

	order, err := h.orderSvc.Create(c.Request.Context(), ports.CreateOrderRequest{
		ServiceID:     req.ServiceID,
		FileID:        fileID,
		FileName:      req.FileName,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		Quantity:      req.Quantity,
		ExtraFields:   req.ExtraFields,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.CreateOrderResponse{
		OrderID:     order.OrderID.String(),
		Amount:      order.Amount,
		Currency:    order.Currency,
		ServiceName: order.ServiceName,
		ServiceType: string(order.ServiceType),
		Quantity:    order.Quantity,
		Status:      string(order.Status),
	})
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("order id must be a valid UUID"))
		return
	}

	order, err := h.orderSvc.Get(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, order)
}

// Download handles GET /api/v1/orders/:id/download — streams the produced
// artifact of a completed order.
func (h *OrderHandler) Download(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("order id must be a valid UUID"))
		return
	}

	file, rc, err := h.orderSvc.Download(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	name := file.OriginalName
	if name == "" {
		name = filepath.Base(file.StoragePath)
	}
	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(
		http.StatusOK,
		file.SizeBytes,
		contentType,
		rc,
		map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", name),
		},
	)
}
