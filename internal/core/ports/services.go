package ports

import (
	"context"
	"io"
	"time"

	"filesolved/internal/core/domain"

	"github.com/google/uuid"
)

// --- Infrastructure Ports ---

// SignatureService handles HMAC-SHA256 signing and verification of webhook
// payloads.
type SignatureService interface {
	Sign(secret string, payload []byte) string
	Verify(secret string, payload []byte, signature string) bool
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles admin JWT operations.
type TokenService interface {
	Generate(adminID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	AdminID string
}

// OrderLock serializes fulfillment attempts per order. Acquire returns false
// when another run currently holds the lock; the TTL bounds how long a
// crashed run can keep an order locked.
type OrderLock interface {
	Acquire(ctx context.Context, orderID uuid.UUID, ttl time.Duration) (bool, error)
	Release(ctx context.Context, orderID uuid.UUID) error
}

// SavedFile describes a file persisted by the FileStore.
type SavedFile struct {
	Path      string
	SizeBytes int64
	Checksum  string // SHA-256 hex
}

// FileStore owns the bytes on disk. Metadata lives in the FileRepository.
type FileStore interface {
	// SaveInput writes an upload as <fileID><ext> under the uploads dir.
	SaveInput(fileID uuid.UUID, ext string, r io.Reader) (*SavedFile, error)
	// Exists reports whether the stored bytes are still present.
	Exists(path string) bool
	// OutputBase returns the path prefix processors append their artifact
	// suffix to for a given order.
	OutputBase(orderID uuid.UUID) string
	// Open reads back stored bytes (downloads).
	Open(path string) (io.ReadCloser, error)
}

// --- Service Ports (Business Logic) ---

// CreateOrderRequest holds validated input for order creation.
type CreateOrderRequest struct {
	ServiceID     string
	FileID        uuid.UUID
	FileName      string
	CustomerEmail string
	CustomerName  string
	Quantity      int
	ExtraFields   map[string]string
}

// OrderService validates order requests against the catalog, prices them and
// persists the order entity.
type OrderService interface {
	Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	// Download resolves the output artifact of a completed order.
	Download(ctx context.Context, orderID uuid.UUID) (*domain.StoredFile, io.ReadCloser, error)
}

// CaptureResult holds a capture outcome reported by the payment gateway.
type CaptureResult struct {
	OrderID    uuid.UUID
	CaptureRef string
	Amount     float64
	Currency   string
}

// PaymentService applies gateway-reported capture/refund outcomes to orders.
type PaymentService interface {
	// ConfirmCapture transitions a pending order to paid and schedules
	// fulfillment asynchronously. Repeated captures on an already-paid order
	// are tolerated without side effects.
	ConfirmCapture(ctx context.Context, res CaptureResult) (*domain.Order, error)
	// FailCapture records a declined capture against a pending order.
	FailCapture(ctx context.Context, orderID uuid.UUID, reason string) error
	// Refund transitions a paid or completed order to refunded.
	Refund(ctx context.Context, orderID uuid.UUID, reason string) (*domain.Order, error)
}

// BatchResult is the per-item outcome of a batch trigger. The result list
// always has one entry per requested order id.
type BatchResult struct {
	OrderID string     `json:"orderId"`
	Status  string     `json:"status"` // queued | error
	JobID   *uuid.UUID `json:"jobId,omitempty"`
	Message string     `json:"message,omitempty"`
}

// ProcessingStatus is the poll view over an order and its newest job.
type ProcessingStatus struct {
	OrderID          uuid.UUID   `json:"orderId"`
	OrderStatus      domain.OrderStatus `json:"orderStatus"`
	Job              *domain.Job `json:"job,omitempty"`
	OutputFile       *string     `json:"outputFile,omitempty"`
	ProcessingTimeMs *int64      `json:"processingTimeMs,omitempty"`
}

// FulfillmentService owns the order/job state machine and drives processors.
type FulfillmentService interface {
	// ProcessOrder runs one fulfillment attempt to completed or failed. The
	// returned error mirrors what was persisted on the order/job; callers at
	// trigger boundaries are responsible for catching it.
	ProcessOrder(ctx context.Context, orderID uuid.UUID) error
	// Trigger starts fulfillment for a paid order without waiting for it.
	Trigger(ctx context.Context, orderID uuid.UUID) (*domain.Job, error)
	// Reprocess resets an order to paid and re-triggers fulfillment.
	Reprocess(ctx context.Context, orderID uuid.UUID) (*domain.Job, error)
	// TriggerBatch fires fulfillment for up to 10 orders with per-item
	// failure isolation.
	TriggerBatch(ctx context.Context, orderIDs []uuid.UUID) ([]BatchResult, error)
	Status(ctx context.Context, orderID uuid.UUID) (*ProcessingStatus, error)
	ListJobs(ctx context.Context, status *domain.JobStatus, limit int) ([]domain.Job, error)
}

// RegisterWebhookRequest holds input for webhook registration.
type RegisterWebhookRequest struct {
	URL        string
	EventTypes []domain.EventType
	Secret     string // generated when empty
}

// UpdateWebhookRequest holds partial updates for a subscription.
type UpdateWebhookRequest struct {
	URL        *string
	EventTypes []domain.EventType
	Active     *bool
}

// DeliveryResult is the synchronous outcome of a webhook test delivery.
type DeliveryResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
}

// EventNotifier manages webhook subscriptions and fans out signed event
// deliveries. Emit is best-effort: per-subscriber failures are isolated and
// at most one attempt is made per event per subscriber.
type EventNotifier interface {
	Register(ctx context.Context, req RegisterWebhookRequest) (*domain.WebhookSubscription, error)
	List(ctx context.Context) ([]domain.WebhookSubscription, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateWebhookRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	Test(ctx context.Context, id uuid.UUID) (*DeliveryResult, error)
	Emit(ctx context.Context, eventType domain.EventType, data map[string]any)
}

// AuthService authenticates the admin operator.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// AuditEntry holds one admin action to record.
type AuditEntry struct {
	ActorID      string
	Action       domain.AuditAction
	ResourceType string
	ResourceID   string
	Details      map[string]any
	IPAddress    string
}

// AuditService records admin actions best-effort.
type AuditService interface {
	Record(ctx context.Context, entry AuditEntry)
}
