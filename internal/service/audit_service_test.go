package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
	"filesolved/internal/core/ports/mocks"
)

func TestAuditService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(repo, zerolog.Nop())

	recorded := make(chan *domain.AuditLog, 1)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *domain.AuditLog) error {
			recorded <- record
			return nil
		})

	svc.Record(context.Background(), ports.AuditEntry{
		ActorID:      "admin",
		Action:       domain.AuditActionReprocess,
		ResourceType: "order",
		ResourceID:   "b7f4c9e2",
		Details:      map[string]any{"priority": "high"},
		IPAddress:    "203.0.113.9",
	})

	select {
	case record := <-recorded:
		assert.Equal(t, "admin", record.ActorID)
		assert.Equal(t, domain.AuditActionReprocess, record.Action)
		assert.Equal(t, "order", record.ResourceType)
		assert.JSONEq(t, `{"priority":"high"}`, record.Details)
		assert.Equal(t, "203.0.113.9", record.IPAddress)
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry was never persisted")
	}
}

func TestAuditService_Record_RepoFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(repo, zerolog.Nop())

	called := make(chan struct{})
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *domain.AuditLog) error {
			close(called)
			return assert.AnError
		})

	svc.Record(context.Background(), ports.AuditEntry{
		ActorID: "admin",
		Action:  domain.AuditActionLogin,
	})

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry was never attempted")
	}
}

func TestAuditService_Record_NilRepoLogsOnly(t *testing.T) {
	svc := NewAuditService(nil, zerolog.Nop())

	require.NotPanics(t, func() {
		svc.Record(context.Background(), ports.AuditEntry{
			ActorID: "admin",
			Action:  domain.AuditActionWebhookDelete,
		})
	})
}
