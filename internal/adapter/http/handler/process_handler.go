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

// ProcessHandler exposes the fulfillment trigger and status endpoints.
type ProcessHandler struct {
	fulfillmentSvc ports.FulfillmentService
}

// NewProcessHandler creates a new ProcessHandler.
func NewProcessHandler(fulfillmentSvc ports.FulfillmentService) *ProcessHandler {
	return &ProcessHandler{fulfillmentSvc: fulfillmentSvc}
}

// Trigger handles POST /api/v1/process/:orderId — starts fulfillment without
// waiting for it.
func (h *ProcessHandler) Trigger(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.Error(c, apperror.Validation("order id must be a valid UUID"))
		return
	}

	job, err := h.fulfillmentSvc.Trigger(c.Request.Context(), orderID)
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

// Status handles GET /api/v1/process/:orderId/status.
func (h *ProcessHandler) Status(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.Error(c, apperror.Validation("order id must be a valid UUID"))
		return
	}

	status, err := h.fulfillmentSvc.Status(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, status)
}

// Batch handles POST /api/v1/process/batch — triggers up to 10 orders with
// per-item failure isolation.
func (h *ProcessHandler) Batch(c *gin.Context) {
	var req dto.BatchProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	orderIDs := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.Validation("orderIds must all be valid UUIDs"))
			return
		}
		orderIDs = append(orderIDs, id)
	}

	results, err := h.fulfillmentSvc.TriggerBatch(c.Request.Context(), orderIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Accepted(c, gin.H{
		"results": results,
		"count":   len(results),
	})
}

// ListJobs handles GET /api/v1/process/jobs (admin).
func (h *ProcessHandler) ListJobs(c *gin.Context) {
	var status *domain.JobStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.JobStatus(raw)
		status = &s
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apperror.Validation("limit must be an integer"))
			return
		}
		limit = n
	}

	jobs, err := h.fulfillmentSvc.ListJobs(c.Request.Context(), status, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"jobs":  jobs,
		"count": len(jobs),
	})
}
