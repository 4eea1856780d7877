package handler

import (
	"time"

	"filesolved/internal/adapter/http/dto"
	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
	"filesolved/pkg/apperror"
	"filesolved/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WebhookHandler manages webhook subscriptions (admin).
type WebhookHandler struct {
	notifier ports.EventNotifier
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(notifier ports.EventNotifier) *WebhookHandler {
	return &WebhookHandler{notifier: notifier}
}

// Register handles POST /api/v1/webhooks. The signing secret is included in
// this response only; listings withhold it.
func (h *WebhookHandler) Register(c *gin.Context) {
	var req dto.RegisterWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	sub, err := h.notifier.Register(c.Request.Context(), ports.RegisterWebhookRequest{
		URL:        req.URL,
		EventTypes: toEventTypes(req.EventTypes),
		Secret:     req.Secret,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toWebhookResponse(sub)
	resp.Secret = sub.Secret
	response.Created(c, resp)
}

// List handles GET /api/v1/webhooks.
func (h *WebhookHandler) List(c *gin.Context) {
	subs, err := h.notifier.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.WebhookResponse, 0, len(subs))
	for i := range subs {
		items = append(items, toWebhookResponse(&subs[i]))
	}

	response.OK(c, gin.H{
		"webhooks": items,
		"count":    len(items),
	})
}

// Update handles PUT /api/v1/webhooks/:id — partial update.
func (h *WebhookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("webhook id must be a valid UUID"))
		return
	}

	var req dto.UpdateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	err = h.notifier.Update(c.Request.Context(), id, ports.UpdateWebhookRequest{
		URL:        req.URL,
		EventTypes: toEventTypes(req.EventTypes),
		Active:     req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"webhookId": id.String()})
}

// Delete handles DELETE /api/v1/webhooks/:id.
func (h *WebhookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("webhook id must be a valid UUID"))
		return
	}

	if err := h.notifier.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Test handles POST /api/v1/webhooks/:id/test — synchronous signed ping.
func (h *WebhookHandler) Test(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("webhook id must be a valid UUID"))
		return
	}

	result, err := h.notifier.Test(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

// Events handles GET /api/v1/webhooks/events — the subscribable catalog.
func (h *WebhookHandler) Events(c *gin.Context) {
	response.OK(c, gin.H{"eventTypes": domain.EventTypes()})
}

func toEventTypes(raw []string) []domain.EventType {
	if raw == nil {
		return nil
	}
	types := make([]domain.EventType, 0, len(raw))
	for _, t := range raw {
		types = append(types, domain.EventType(t))
	}
	return types
}

func toWebhookResponse(sub *domain.WebhookSubscription) dto.WebhookResponse {
	resp := dto.WebhookResponse{
		WebhookID:  sub.WebhookID.String(),
		URL:        sub.URL,
		Active:     sub.Active,
		EventTypes: make([]string, 0, len(sub.EventTypes)),
		CreatedAt:  sub.CreatedAt.Format(time.RFC3339),
	}
	for _, t := range sub.EventTypes {
		resp.EventTypes = append(resp.EventTypes, string(t))
	}
	if sub.LastTriggered != nil {
		s := sub.LastTriggered.Format(time.RFC3339)
		resp.LastTriggered = &s
	}
	return resp
}
