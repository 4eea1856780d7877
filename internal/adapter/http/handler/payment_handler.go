package handler

import (
	"filesolved/internal/adapter/http/dto"
	"filesolved/internal/core/ports"
	"filesolved/pkg/apperror"
	"filesolved/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler receives gateway-reported capture outcomes.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Capture handles POST /api/v1/payments/:orderId/capture. A "completed"
// status confirms the capture and schedules fulfillment; "failed" records
// the decline.
func (h *PaymentHandler) Capture(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.Error(c, apperror.Validation("order id must be a valid UUID"))
		return
	}

	var req dto.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	if req.Status == "failed" {
		reason := req.Reason
		if reason == "" {
			reason = "capture declined by gateway"
		}
		if err := h.paymentSvc.FailCapture(c.Request.Context(), orderID, reason); err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, gin.H{
			"orderId": orderID.String(),
			"status":  "failed",
		})
		return
	}

	order, err := h.paymentSvc.ConfirmCapture(c.Request.Context(), ports.CaptureResult{
		OrderID:    orderID,
		CaptureRef: req.CaptureRef,
		Amount:     req.Amount,
		Currency:   req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"orderId": order.OrderID.String(),
		"status":  string(order.Status),
	})
}
