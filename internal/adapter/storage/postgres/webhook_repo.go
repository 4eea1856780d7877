package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"filesolved/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WebhookRepo implements ports.WebhookRepository.
type WebhookRepo struct {
	pool Pool
}

// NewWebhookRepo creates a new WebhookRepo.
func NewWebhookRepo(pool Pool) *WebhookRepo {
	return &WebhookRepo{pool: pool}
}

const webhookColumns = `id, url, event_types, secret, active, last_triggered, created_at`

// Create inserts a new subscription.
func (r *WebhookRepo) Create(ctx context.Context, sub *domain.WebhookSubscription) error {
	query := `INSERT INTO webhooks (` + webhookColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.pool.Exec(ctx, query,
		sub.WebhookID, sub.URL, eventTypeStrings(sub.EventTypes), sub.Secret,
		sub.Active, sub.LastTriggered, sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook: %w", err)
	}
	return nil
}

// GetByID fetches a subscription. Returns (nil, nil) when absent.
func (r *WebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookSubscription, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE id = $1`

	sub, err := scanWebhook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get webhook by id: %w", err)
	}
	return sub, nil
}

// List returns all subscriptions, newest first.
func (r *WebhookRepo) List(ctx context.Context) ([]domain.WebhookSubscription, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}
	defer rows.Close()

	return collectWebhooks(rows)
}

// ListActiveForEvent returns active subscriptions whose event type set
// contains the given type.
func (r *WebhookRepo) ListActiveForEvent(ctx context.Context, eventType domain.EventType) ([]domain.WebhookSubscription, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks
		WHERE active AND $1 = ANY(event_types)`

	rows, err := r.pool.Query(ctx, query, string(eventType))
	if err != nil {
		return nil, fmt.Errorf("list webhooks for event: %w", err)
	}
	defer rows.Close()

	return collectWebhooks(rows)
}

// Update rewrites the subscription's mutable fields.
func (r *WebhookRepo) Update(ctx context.Context, sub *domain.WebhookSubscription) error {
	query := `UPDATE webhooks SET url = $1, event_types = $2, active = $3 WHERE id = $4`

	tag, err := r.pool.Exec(ctx, query,
		sub.URL, eventTypeStrings(sub.EventTypes), sub.Active, sub.WebhookID,
	)
	if err != nil {
		return fmt.Errorf("update webhook: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("webhook %s not found", sub.WebhookID)
	}
	return nil
}

// Delete removes a subscription.
func (r *WebhookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM webhooks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

// Touch updates the subscription's last triggered timestamp.
func (r *WebhookRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	if _, err := r.pool.Exec(ctx, `UPDATE webhooks SET last_triggered = $1 WHERE id = $2`, at, id); err != nil {
		return fmt.Errorf("touch webhook: %w", err)
	}
	return nil
}

func collectWebhooks(rows pgx.Rows) ([]domain.WebhookSubscription, error) {
	var subs []domain.WebhookSubscription
	for rows.Next() {
		sub, err := scanWebhook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan webhook: %w", err)
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func scanWebhook(row pgx.Row) (*domain.WebhookSubscription, error) {
	sub := &domain.WebhookSubscription{}
	var eventTypes []string
	err := row.Scan(
		&sub.WebhookID, &sub.URL, &eventTypes, &sub.Secret,
		&sub.Active, &sub.LastTriggered, &sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.EventTypes = make([]domain.EventType, len(eventTypes))
	for i, et := range eventTypes {
		sub.EventTypes[i] = domain.EventType(et)
	}
	return sub, nil
}

func eventTypeStrings(types []domain.EventType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
