package handler

import (
	"filesolved/internal/catalog"
	"filesolved/internal/core/domain"
	"filesolved/pkg/apperror"
	"filesolved/pkg/response"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the public service catalog.
type ServiceHandler struct {
	cat *catalog.Catalog
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(cat *catalog.Catalog) *ServiceHandler {
	return &ServiceHandler{cat: cat}
}

// List handles GET /api/v1/services. The type, tag and q filters are
// mutually exclusive; type wins, then tag, then q.
func (h *ServiceHandler) List(c *gin.Context) {
	var svcs []domain.ServiceDefinition

	switch {
	case c.Query("type") != "":
		svcs = h.cat.ByType(domain.ServiceType(c.Query("type")))
	case c.Query("tag") != "":
		svcs = h.cat.ByTag(c.Query("tag"))
	case c.Query("q") != "":
		svcs = h.cat.Search(c.Query("q"))
	default:
		svcs = h.cat.Enabled()
	}

	response.OK(c, gin.H{
		"services": svcs,
		"count":    len(svcs),
	})
}

// Types handles GET /api/v1/services/types — distinct enabled service types
// with counts.
func (h *ServiceHandler) Types(c *gin.Context) {
	counts := make(map[domain.ServiceType]int)
	var order []domain.ServiceType
	for _, svc := range h.cat.Enabled() {
		if _, seen := counts[svc.Type]; !seen {
			order = append(order, svc.Type)
		}
		counts[svc.Type]++
	}

	type typeEntry struct {
		Type  domain.ServiceType `json:"type"`
		Count int                `json:"count"`
	}
	entries := make([]typeEntry, 0, len(order))
	for _, t := range order {
		entries = append(entries, typeEntry{Type: t, Count: counts[t]})
	}

	response.OK(c, gin.H{"types": entries})
}

// Get handles GET /api/v1/services/:id.
func (h *ServiceHandler) Get(c *gin.Context) {
	svc, ok := h.cat.ByID(c.Param("id"))
	if !ok || !svc.Enabled {
		response.Error(c, apperror.ErrNotFound("Service"))
		return
	}
	response.OK(c, svc)
}
