package handler

import (
	"strconv"

	"filesolved/internal/adapter/http/dto"
	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
	"filesolved/pkg/apperror"
	"filesolved/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler exposes operator-only order actions.
type AdminHandler struct {
	paymentSvc     ports.PaymentService
	fulfillmentSvc ports.FulfillmentService
	orderRepo      ports.OrderRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(paymentSvc ports.PaymentService, fulfillmentSvc ports.FulfillmentService, orderRepo ports.OrderRepository) *AdminHandler {
	return &AdminHandler{
		paymentSvc:     paymentSvc,
		fulfillmentSvc: fulfillmentSvc,
		orderRepo:      orderRepo,
	}
}

// ListOrders handles GET /api/v1/admin/orders with optional status filter
// and pagination.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	params := ports.OrderListParams{}

	if raw := c.Query("status"); raw != "" {
		s := domain.OrderStatus(raw)
		params.Status = &s
	}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apperror.Validation("page must be an integer"))
			return
		}
		params.Page = n
	}
	if raw := c.Query("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apperror.Validation("pageSize must be an integer"))
			return
		}
		params.PageSize = n
	}

	orders, total, err := h.orderRepo.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	response.OK(c, dto.OrderListResponse{
		Items:      orders,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// Reprocess handles POST /api/v1/admin/orders/:id/reprocess — resets the
// order to paid and re-triggers fulfillment at high priority.
func (h *AdminHandler) Reprocess(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("order id must be a valid UUID"))
		return
	}

	job, err := h.fulfillmentSvc.Reprocess(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Accepted(c, gin.H{
		"orderId": orderID.String(),
		"jobId":   job.JobID.String(),
		"status":  string(job.Status),
	})
}

// Refund handles POST /api/v1/admin/orders/:id/refund.
func (h *AdminHandler) Refund(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("order id must be a valid UUID"))
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	order, err := h.paymentSvc.Refund(c.Request.Context(), orderID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"orderId": order.OrderID.String(),
		"status":  string(order.Status),
	})
}
