package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
)

type captureAudit struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func (a *captureAudit) Record(_ context.Context, entry ports.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *captureAudit) all() []ports.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ports.AuditEntry(nil), a.entries...)
}

func auditTestRouter(audit *captureAudit, status int) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(CtxAdminID, "admin")
		c.Next()
	})
	r.Use(AuditLog(audit))
	handle := func(c *gin.Context) { c.Status(status) }
	r.POST("/api/v1/admin/orders/:id/reprocess", handle)
	r.POST("/api/v1/admin/orders/:id/refund", handle)
	r.POST("/api/v1/webhooks", handle)
	r.PUT("/api/v1/webhooks/:id", handle)
	r.DELETE("/api/v1/webhooks/:id", handle)
	r.POST("/api/v1/webhooks/:id/test", handle)
	r.GET("/api/v1/webhooks", handle)
	return r
}

func TestAuditLog_MapsActions(t *testing.T) {
	tests := []struct {
		method     string
		path       string
		action     domain.AuditAction
		resourceID string
	}{
		{"POST", "/api/v1/admin/orders/abc123/reprocess", domain.AuditActionReprocess, "abc123"},
		{"POST", "/api/v1/admin/orders/abc123/refund", domain.AuditActionRefund, "abc123"},
		{"POST", "/api/v1/webhooks", domain.AuditActionWebhookCreate, ""},
		{"PUT", "/api/v1/webhooks/wh1", domain.AuditActionWebhookUpdate, "wh1"},
		{"DELETE", "/api/v1/webhooks/wh1", domain.AuditActionWebhookDelete, "wh1"},
		{"POST", "/api/v1/webhooks/wh1/test", domain.AuditActionWebhookTest, "wh1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			audit := &captureAudit{}
			r := auditTestRouter(audit, http.StatusOK)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			entries := audit.all()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.action, entries[0].Action)
			assert.Equal(t, tt.resourceID, entries[0].ResourceID)
			assert.Equal(t, "admin", entries[0].ActorID)
		})
	}
}

func TestAuditLog_SkipsReadsAndFailures(t *testing.T) {
	audit := &captureAudit{}
	r := auditTestRouter(audit, http.StatusOK)

	// Reads are never audited.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/webhooks", nil))
	assert.Empty(t, audit.all())

	// Failed writes are not audited.
	audit = &captureAudit{}
	r = auditTestRouter(audit, http.StatusConflict)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks", nil))
	assert.Empty(t, audit.all())
}
