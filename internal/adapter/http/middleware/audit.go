package middleware

import (
	"regexp"

	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"

	"github.com/gin-gonic/gin"
)

var (
	reprocessPathRe = regexp.MustCompile(`^/api/v1/admin/orders/([^/]+)/reprocess$`)
	refundPathRe    = regexp.MustCompile(`^/api/v1/admin/orders/([^/]+)/refund$`)
	webhookPathRe   = regexp.MustCompile(`^/api/v1/webhooks/([^/]+)(/test)?$`)
)

// AuditLog creates an audit middleware that records successful admin write
// operations. It maps HTTP methods and paths to audit actions.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			return
		}

		action, resourceType, resourceID := mapPathToAction(c.Request.URL.Path, c.Request.Method)
		if action == "" {
			return
		}

		auditSvc.Record(c.Request.Context(), ports.AuditEntry{
			ActorID:      c.GetString(CtxAdminID),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Details: map[string]any{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"status": c.Writer.Status(),
			},
			IPAddress: c.ClientIP(),
		})
	}
}

func mapPathToAction(path, method string) (domain.AuditAction, string, string) {
	if path == "/api/v1/auth/login" && method == "POST" {
		return domain.AuditActionLogin, "session", ""
	}
	if m := reprocessPathRe.FindStringSubmatch(path); m != nil && method == "POST" {
		return domain.AuditActionReprocess, "order", m[1]
	}
	if m := refundPathRe.FindStringSubmatch(path); m != nil && method == "POST" {
		return domain.AuditActionRefund, "order", m[1]
	}
	if path == "/api/v1/webhooks" && method == "POST" {
		return domain.AuditActionWebhookCreate, "webhook", ""
	}
	if m := webhookPathRe.FindStringSubmatch(path); m != nil {
		switch {
		case m[2] == "/test" && method == "POST":
			return domain.AuditActionWebhookTest, "webhook", m[1]
		case method == "PUT":
			return domain.AuditActionWebhookUpdate, "webhook", m[1]
		case method == "DELETE":
			return domain.AuditActionWebhookDelete, "webhook", m[1]
		}
	}
	return "", "", ""
}
