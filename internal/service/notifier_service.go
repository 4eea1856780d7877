package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
	"filesolved/internal/telemetry"
	"filesolved/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Webhook delivery headers.
const (
	headerSignature = "X-FileSolved-Signature"
	headerEvent     = "X-FileSolved-Event"
)

const deliveryTimeout = 10 * time.Second

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NotifierService implements ports.EventNotifier. Every delivery is signed
// with the subscription's secret over the exact request body, attempted at
// most once, and bounded by a 10 second timeout. One slow or broken
// subscriber never affects the others or the emitting caller.
type NotifierService struct {
	repo       ports.WebhookRepository
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewNotifierService creates a new NotifierService. A nil httpClient gets a
// default client with the delivery timeout applied.
func NewNotifierService(
	repo ports.WebhookRepository,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	log zerolog.Logger,
) *NotifierService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: deliveryTimeout}
	}
	return &NotifierService{
		repo:       repo,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		log:        log,
	}
}

// Register creates a subscription. The generated secret is returned exactly
// once on the created subscription and withheld from all later reads.
func (s *NotifierService) Register(ctx context.Context, req ports.RegisterWebhookRequest) (*domain.WebhookSubscription, error) {
	if err := validateWebhookURL(req.URL); err != nil {
		return nil, err
	}
	eventTypes := filterEventTypes(req.EventTypes)
	if len(eventTypes) == 0 {
		return nil, apperror.Validation("at least one valid event type is required")
	}

	secret := req.Secret
	if secret == "" {
		var err error
		secret, err = generateSecret()
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("generate secret: %w", err))
		}
	}

	sub := &domain.WebhookSubscription{
		WebhookID:  uuid.New(),
		URL:        req.URL,
		EventTypes: eventTypes,
		Secret:     secret,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create webhook: %w", err))
	}

	s.log.Info().
		Str("webhook_id", sub.WebhookID.String()).
		Str("url", sub.URL).
		Int("event_types", len(sub.EventTypes)).
		Msg("webhook registered")

	return sub, nil
}

// List returns all subscriptions, secrets withheld.
func (s *NotifierService) List(ctx context.Context) ([]domain.WebhookSubscription, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list webhooks: %w", err))
	}
	for i := range subs {
		subs[i].Secret = ""
	}
	return subs, nil
}

// Update applies a partial update to a subscription.
func (s *NotifierService) Update(ctx context.Context, id uuid.UUID, req ports.UpdateWebhookRequest) error {
	sub, err := s.getSubscription(ctx, id)
	if err != nil {
		return err
	}

	if req.URL != nil {
		if err := validateWebhookURL(*req.URL); err != nil {
			return err
		}
		sub.URL = *req.URL
	}
	if req.EventTypes != nil {
		eventTypes := filterEventTypes(req.EventTypes)
		if len(eventTypes) == 0 {
			return apperror.Validation("at least one valid event type is required")
		}
		sub.EventTypes = eventTypes
	}
	if req.Active != nil {
		sub.Active = *req.Active
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return apperror.InternalError(fmt.Errorf("update webhook: %w", err))
	}
	return nil
}

// Delete removes a subscription.
func (s *NotifierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getSubscription(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.InternalError(fmt.Errorf("delete webhook: %w", err))
	}
	return nil
}

// Test synchronously delivers a test.ping event to one subscription and
// returns the outcome to the caller instead of swallowing it.
func (s *NotifierService) Test(ctx context.Context, id uuid.UUID) (*ports.DeliveryResult, error) {
	sub, err := s.getSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	event := domain.NewEvent(domain.EventTestPing, map[string]any{
		"message": "Webhook test from FileSolved",
	})
	result := s.deliver(ctx, sub, event)
	return &result, nil
}

// Emit fans a signed event out to every active matching subscription. It
// returns immediately; deliveries run in their own goroutines and failures
// are logged, never propagated.
func (s *NotifierService) Emit(ctx context.Context, eventType domain.EventType, data map[string]any) {
	subs, err := s.repo.ListActiveForEvent(ctx, eventType)
	if err != nil {
		s.log.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to list webhook subscriptions")
		return
	}
	if len(subs) == 0 {
		return
	}

	event := domain.NewEvent(eventType, data)
	for i := range subs {
		sub := subs[i]
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
			defer cancel()
			s.deliver(ctx, &sub, event)
		}()
	}
}

// deliver makes exactly one signed delivery attempt.
func (s *NotifierService) deliver(ctx context.Context, sub *domain.WebhookSubscription, event *domain.Event) ports.DeliveryResult {
	body, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Str("webhook_id", sub.WebhookID.String()).Msg("webhook: failed to marshal event")
		return ports.DeliveryResult{Success: false, Error: "failed to serialize event"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.URL, bytes.NewReader(body))
	if err != nil {
		return ports.DeliveryResult{Success: false, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerSignature, s.sigSvc.Sign(sub.Secret, body))
	req.Header.Set(headerEvent, string(event.EventType))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		telemetry.WebhookDeliveries.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).
			Str("webhook_id", sub.WebhookID.String()).
			Str("event_type", string(event.EventType)).
			Msg("webhook: delivery failed")
		return ports.DeliveryResult{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	result := ports.DeliveryResult{StatusCode: resp.StatusCode}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result.Success = true
		telemetry.WebhookDeliveries.WithLabelValues("success").Inc()
		if err := s.repo.Touch(context.WithoutCancel(ctx), sub.WebhookID, time.Now().UTC()); err != nil {
			s.log.Warn().Err(err).Str("webhook_id", sub.WebhookID.String()).Msg("webhook: failed to record lastTriggered")
		}
		s.log.Info().
			Str("webhook_id", sub.WebhookID.String()).
			Str("event_type", string(event.EventType)).
			Int("status", resp.StatusCode).
			Msg("webhook: delivered")
		return result
	}

	telemetry.WebhookDeliveries.WithLabelValues("rejected").Inc()
	result.Error = fmt.Sprintf("subscriber returned status %d", resp.StatusCode)
	s.log.Warn().
		Str("webhook_id", sub.WebhookID.String()).
		Str("event_type", string(event.EventType)).
		Int("status", resp.StatusCode).
		Msg("webhook: non-2xx response")
	return result
}

func (s *NotifierService) getSubscription(ctx context.Context, id uuid.UUID) (*domain.WebhookSubscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get webhook: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrNotFound("Webhook")
	}
	return sub, nil
}

// filterEventTypes keeps the subset of types present in the closed event
// catalog; unknown entries are silently dropped.
func filterEventTypes(types []domain.EventType) []domain.EventType {
	var valid []domain.EventType
	for _, et := range types {
		if domain.IsValidEventType(et) {
			valid = append(valid, et)
		}
	}
	return valid
}

func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperror.Validation("url must be a valid http(s) URL")
	}
	return nil
}

// generateSecret returns 32 random bytes hex-encoded.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
