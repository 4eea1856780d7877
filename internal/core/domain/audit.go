package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited admin action.
type AuditAction string

const (
	AuditActionLogin          AuditAction = "ADMIN_LOGIN"
	AuditActionReprocess      AuditAction = "ORDER_REPROCESS"
	AuditActionRefund         AuditAction = "ORDER_REFUND"
	AuditActionWebhookCreate  AuditAction = "WEBHOOK_CREATE"
	AuditActionWebhookUpdate  AuditAction = "WEBHOOK_UPDATE"
	AuditActionWebhookDelete  AuditAction = "WEBHOOK_DELETE"
	AuditActionWebhookTest    AuditAction = "WEBHOOK_TEST"
)

// AuditLog records a single audited admin action.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      string      `json:"actorId,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resourceType"`
	ResourceID   string      `json:"resourceId,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ipAddress"`
	CreatedAt    time.Time   `json:"createdAt"`
}
