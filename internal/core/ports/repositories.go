package ports

import (
	"context"
	"time"

	"filesolved/internal/core/domain"

	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders. Status changes
// are single-writer field updates keyed by order id; no transaction wraps a
// whole fulfillment run.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// GetByID returns (nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID, captureRef string, paidAt time.Time) error
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, outputFile string, processingTimeMs int64, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error
	MarkRefunded(ctx context.Context, id uuid.UUID) error
	// ResetForReprocess puts the order back to paid and clears output, error
	// and completion fields so a fresh fulfillment run can start.
	ResetForReprocess(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params OrderListParams) ([]domain.Order, int64, error)
}

// OrderListParams holds filter + pagination for listing orders.
type OrderListParams struct {
	Status   *domain.OrderStatus
	Page     int
	PageSize int
}

// JobRepository defines persistence operations for fulfillment jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	// LatestByOrder returns the most recently created job for an order, or
	// (nil, nil) when the order has none.
	LatestByOrder(ctx context.Context, orderID uuid.UUID) (*domain.Job, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) error
	// MarkFailed records the error and increments the attempts counter.
	MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error
	List(ctx context.Context, status *domain.JobStatus, limit int) ([]domain.Job, error)
}

// FileRepository defines persistence operations for stored file metadata.
type FileRepository interface {
	Create(ctx context.Context, f *domain.StoredFile) error
	// GetByID returns (nil, nil) when no record exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StoredFile, error)
	// LatestOutputByOrder returns the newest output record for an order.
	LatestOutputByOrder(ctx context.Context, orderID uuid.UUID) (*domain.StoredFile, error)
}

// PaymentRepository defines persistence operations for gateway payment records.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error)
	MarkRefunded(ctx context.Context, orderID uuid.UUID, amount float64, reason string) error
}

// WebhookRepository defines persistence operations for webhook subscriptions.
type WebhookRepository interface {
	Create(ctx context.Context, sub *domain.WebhookSubscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookSubscription, error)
	List(ctx context.Context) ([]domain.WebhookSubscription, error)
	// ListActiveForEvent returns active subscriptions whose event type set
	// contains the given type.
	ListActiveForEvent(ctx context.Context, eventType domain.EventType) ([]domain.WebhookSubscription, error)
	Update(ctx context.Context, sub *domain.WebhookSubscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Touch updates the subscription's lastTriggered timestamp.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}

// AuditRepository defines persistence for admin action audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
