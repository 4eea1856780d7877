package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
	"filesolved/internal/core/ports/mocks"
	"filesolved/internal/telemetry"
	"filesolved/pkg/apperror"
)

type notifierTestDeps struct {
	svc  *NotifierService
	repo *mocks.MockWebhookRepository
}

func setupNotifierService(t *testing.T) *notifierTestDeps {
	ctrl := gomock.NewController(t)
	d := &notifierTestDeps{
		repo: mocks.NewMockWebhookRepository(ctrl),
	}
	d.svc = NewNotifierService(d.repo, NewHMACSignatureService(), nil, zerolog.Nop())
	return d
}

func TestNotifierService_Register(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()

	d.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	sub, err := d.svc.Register(ctx, ports.RegisterWebhookRequest{
		URL:        "https://hooks.example.com/filesolved",
		EventTypes: []domain.EventType{domain.EventOrderCompleted, domain.EventOrderFailed},
	})
	require.NoError(t, err)
	assert.True(t, sub.Active)
	// Generated secret: 32 random bytes, hex.
	assert.Len(t, sub.Secret, 64)
}

func TestNotifierService_Register_Validation(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ports.RegisterWebhookRequest
		code string
	}{
		{
			name: "bad scheme",
			req: ports.RegisterWebhookRequest{
				URL:        "ftp://hooks.example.com",
				EventTypes: []domain.EventType{domain.EventOrderCompleted},
			},
			code: "VAL_001",
		},
		{
			name: "no host",
			req: ports.RegisterWebhookRequest{
				URL:        "https://",
				EventTypes: []domain.EventType{domain.EventOrderCompleted},
			},
			code: "VAL_001",
		},
		{
			name: "no event types",
			req:  ports.RegisterWebhookRequest{URL: "https://hooks.example.com"},
			code: "VAL_001",
		},
		{
			name: "all event types unknown",
			req: ports.RegisterWebhookRequest{
				URL:        "https://hooks.example.com",
				EventTypes: []domain.EventType{"order.exploded"},
			},
			code: "VAL_001",
		},
		{
			name: "ping is not subscribable",
			req: ports.RegisterWebhookRequest{
				URL:        "https://hooks.example.com",
				EventTypes: []domain.EventType{domain.EventTestPing},
			},
			code: "VAL_001",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.svc.Register(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.From(err).Code)
		})
	}
}

func TestNotifierService_Register_DropsUnknownEventTypes(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()

	var created *domain.WebhookSubscription
	d.repo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *domain.WebhookSubscription) error {
			created = sub
			return nil
		})

	sub, err := d.svc.Register(ctx, ports.RegisterWebhookRequest{
		URL:        "https://hooks.example.com/filesolved",
		EventTypes: []domain.EventType{domain.EventOrderCreated, "bogus.event"},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.EventType{domain.EventOrderCreated}, sub.EventTypes)
	require.NotNil(t, created)
	assert.Equal(t, []domain.EventType{domain.EventOrderCreated}, created.EventTypes)
}

func TestNotifierService_List_WithholdsSecrets(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()

	d.repo.EXPECT().List(ctx).Return([]domain.WebhookSubscription{
		{WebhookID: uuid.New(), URL: "https://a.example.com", Secret: "topsecret"},
		{WebhookID: uuid.New(), URL: "https://b.example.com", Secret: "alsosecret"},
	}, nil)

	subs, err := d.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	for _, sub := range subs {
		assert.Empty(t, sub.Secret)
	}
}

func TestNotifierService_Update_NotFound(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()
	id := uuid.New()

	d.repo.EXPECT().GetByID(ctx, id).Return(nil, nil)

	err := d.svc.Update(ctx, id, ports.UpdateWebhookRequest{})
	require.Error(t, err)
	assert.Equal(t, "ORD_001", apperror.From(err).Code)
}

func TestNotifierService_Update_Partial(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()
	sub := &domain.WebhookSubscription{
		WebhookID:  uuid.New(),
		URL:        "https://old.example.com",
		EventTypes: []domain.EventType{domain.EventOrderCompleted},
		Secret:     "s",
		Active:     true,
	}

	d.repo.EXPECT().GetByID(ctx, sub.WebhookID).Return(sub, nil)
	var updated *domain.WebhookSubscription
	d.repo.EXPECT().Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.WebhookSubscription) error {
			updated = s
			return nil
		})

	inactive := false
	err := d.svc.Update(ctx, sub.WebhookID, ports.UpdateWebhookRequest{Active: &inactive})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.Active)
	// Fields not in the request stay put.
	assert.Equal(t, "https://old.example.com", updated.URL)
}

func TestNotifierService_Delete(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()
	id := uuid.New()

	d.repo.EXPECT().GetByID(ctx, id).Return(&domain.WebhookSubscription{WebhookID: id}, nil)
	d.repo.EXPECT().Delete(ctx, id).Return(nil)

	require.NoError(t, d.svc.Delete(ctx, id))
}

// receivedDelivery captures one request a test subscriber saw.
type receivedDelivery struct {
	body      []byte
	signature string
	eventType string
}

func runSubscriber(t *testing.T, status int) (*httptest.Server, func() []receivedDelivery) {
	t.Helper()
	var mu sync.Mutex
	var got []receivedDelivery
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, receivedDelivery{
			body:      body,
			signature: r.Header.Get("X-FileSolved-Signature"),
			eventType: r.Header.Get("X-FileSolved-Event"),
		})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []receivedDelivery {
		mu.Lock()
		defer mu.Unlock()
		return append([]receivedDelivery(nil), got...)
	}
}

func TestNotifierService_Test_DeliversSignedPing(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()
	srv, deliveries := runSubscriber(t, http.StatusOK)

	sub := &domain.WebhookSubscription{
		WebhookID:  uuid.New(),
		URL:        srv.URL,
		EventTypes: []domain.EventType{domain.EventOrderCompleted},
		Secret:     "whsec_test",
		Active:     true,
	}
	d.repo.EXPECT().GetByID(ctx, sub.WebhookID).Return(sub, nil)
	d.repo.EXPECT().Touch(gomock.Any(), sub.WebhookID, gomock.Any()).Return(nil)

	result, err := d.svc.Test(ctx, sub.WebhookID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, http.StatusOK, result.StatusCode)

	got := deliveries()
	require.Len(t, got, 1)
	assert.Equal(t, "test.ping", got[0].eventType)

	// The signature verifies over the exact bytes on the wire.
	sigSvc := NewHMACSignatureService()
	assert.True(t, sigSvc.Verify(sub.Secret, got[0].body, got[0].signature))

	var envelope struct {
		EventID   string         `json:"eventId"`
		EventType string         `json:"eventType"`
		Timestamp string         `json:"timestamp"`
		Data      map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(got[0].body, &envelope))
	assert.NotEmpty(t, envelope.EventID)
	assert.Equal(t, "test.ping", envelope.EventType)
	_, err = time.Parse(time.RFC3339, envelope.Timestamp)
	assert.NoError(t, err)
}

func TestNotifierService_Test_SubscriberRejects(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()
	srv, _ := runSubscriber(t, http.StatusInternalServerError)

	sub := &domain.WebhookSubscription{
		WebhookID: uuid.New(),
		URL:       srv.URL,
		Secret:    "whsec_test",
		Active:    true,
	}
	d.repo.EXPECT().GetByID(ctx, sub.WebhookID).Return(sub, nil)

	result, err := d.svc.Test(ctx, sub.WebhookID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	assert.NotEmpty(t, result.Error)
}

func TestNotifierService_Test_UnreachableEndpointCountsFailure(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()

	// Start a server just to claim a port, then close it so the dial fails.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	sub := &domain.WebhookSubscription{
		WebhookID: uuid.New(),
		URL:       srv.URL,
		Secret:    "whsec_test",
		Active:    true,
	}
	d.repo.EXPECT().GetByID(ctx, sub.WebhookID).Return(sub, nil)

	before := testutil.ToFloat64(telemetry.WebhookDeliveries.WithLabelValues("error"))
	result, err := d.svc.Test(ctx, sub.WebhookID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, before+1, testutil.ToFloat64(telemetry.WebhookDeliveries.WithLabelValues("error")))
}

func TestNotifierService_Emit_FansOutToActiveSubscribers(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()
	srvA, deliveriesA := runSubscriber(t, http.StatusOK)
	srvB, deliveriesB := runSubscriber(t, http.StatusNoContent)

	subs := []domain.WebhookSubscription{
		{WebhookID: uuid.New(), URL: srvA.URL, Secret: "secret-a", Active: true},
		{WebhookID: uuid.New(), URL: srvB.URL, Secret: "secret-b", Active: true},
	}
	d.repo.EXPECT().ListActiveForEvent(ctx, domain.EventOrderCompleted).Return(subs, nil)

	var touched sync.WaitGroup
	touched.Add(2)
	d.repo.EXPECT().Touch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, uuid.UUID, time.Time) error {
			touched.Done()
			return nil
		}).Times(2)

	d.svc.Emit(ctx, domain.EventOrderCompleted, map[string]any{"orderId": uuid.New().String()})
	waitGroupWithTimeout(t, &touched)

	gotA, gotB := deliveriesA(), deliveriesB()
	require.Len(t, gotA, 1)
	require.Len(t, gotB, 1)
	assert.Equal(t, "order.completed", gotA[0].eventType)

	// Both subscribers got the same event body, each signed with its own
	// secret.
	sigSvc := NewHMACSignatureService()
	assert.True(t, sigSvc.Verify("secret-a", gotA[0].body, gotA[0].signature))
	assert.True(t, sigSvc.Verify("secret-b", gotB[0].body, gotB[0].signature))
	assert.NotEqual(t, gotA[0].signature, gotB[0].signature)
	assert.JSONEq(t, string(gotA[0].body), string(gotB[0].body))
}

func TestNotifierService_Emit_NoSubscribersIsQuiet(t *testing.T) {
	d := setupNotifierService(t)
	ctx := context.Background()

	d.repo.EXPECT().ListActiveForEvent(ctx, domain.EventOrderPaid).Return(nil, nil)

	d.svc.Emit(ctx, domain.EventOrderPaid, map[string]any{"orderId": "x"})
}

func waitGroupWithTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("deliveries did not complete in time")
	}
}
