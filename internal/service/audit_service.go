package service

import (
	"context"
	"encoding/json"
	"time"

	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates a new audit service.
// If repo is nil, audit entries are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists an audit entry asynchronously (fire-and-forget). Audit
// failures never fail the admin action they describe.
func (s *auditService) Record(ctx context.Context, entry ports.AuditEntry) {
	go func() {
		s.log.Info().
			Str("actor", entry.ActorID).
			Str("action", string(entry.Action)).
			Str("resource_type", entry.ResourceType).
			Str("resource_id", entry.ResourceID).
			Str("ip", entry.IPAddress).
			Msg("audit")

		if s.repo == nil {
			return
		}

		var details string
		if len(entry.Details) > 0 {
			if raw, err := json.Marshal(entry.Details); err == nil {
				details = string(raw)
			}
		}

		record := &domain.AuditLog{
			ID:           uuid.New(),
			ActorID:      entry.ActorID,
			Action:       entry.Action,
			ResourceType: entry.ResourceType,
			ResourceID:   entry.ResourceID,
			Details:      details,
			IPAddress:    entry.IPAddress,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.repo.Create(context.Background(), record); err != nil {
			s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to persist audit log")
		}
	}()
}
