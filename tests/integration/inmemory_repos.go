package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"

	"github.com/google/uuid"
)

// --- In-Memory Order Repo ---

type inMemoryOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
}

func newInMemoryOrderRepo() *inMemoryOrderRepo {
	return &inMemoryOrderRepo{orders: make(map[uuid.UUID]*domain.Order)}
}

func (r *inMemoryOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.OrderID] = &cp
	return nil
}

func (r *inMemoryOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *inMemoryOrderRepo) MarkPaid(ctx context.Context, id uuid.UUID, captureRef string, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != domain.OrderStatusPending {
		return fmt.Errorf("order %s not pending", id)
	}
	o.Status = domain.OrderStatusPaid
	o.CaptureRef = &captureRef
	o.PaidAt = &paidAt
	return nil
}

func (r *inMemoryOrderRepo) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = domain.OrderStatusProcessing
	return nil
}

func (r *inMemoryOrderRepo) MarkCompleted(ctx context.Context, id uuid.UUID, outputFile string, processingTimeMs int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = domain.OrderStatusCompleted
	o.OutputFile = &outputFile
	o.ProcessingTimeMs = &processingTimeMs
	o.ErrorMessage = nil
	o.ProcessedAt = &at
	o.CompletedAt = &at
	return nil
}

func (r *inMemoryOrderRepo) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = domain.OrderStatusFailed
	o.ErrorMessage = &errorMessage
	return nil
}

func (r *inMemoryOrderRepo) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = domain.OrderStatusRefunded
	return nil
}

func (r *inMemoryOrderRepo) ResetForReprocess(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = domain.OrderStatusPaid
	o.OutputFile = nil
	o.ProcessingTimeMs = nil
	o.ErrorMessage = nil
	o.ProcessedAt = nil
	o.CompletedAt = nil
	return nil
}

func (r *inMemoryOrderRepo) List(ctx context.Context, params ports.OrderListParams) ([]domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []domain.Order
	for _, o := range r.orders {
		if params.Status != nil && o.Status != *params.Status {
			continue
		}
		all = append(all, *o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	page := params.Page
	if page < 1 {
		page = 1
	}
	size := params.PageSize
	if size < 1 || size > 100 {
		size = 20
	}
	total := int64(len(all))
	start := (page - 1) * size
	if start >= len(all) {
		return []domain.Order{}, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// --- In-Memory Job Repo ---

type inMemoryJobRepo struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*domain.Job
}

func newInMemoryJobRepo() *inMemoryJobRepo {
	return &inMemoryJobRepo{jobs: make(map[uuid.UUID]*domain.Job)}
}

func (r *inMemoryJobRepo) Create(ctx context.Context, j *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *j
	r.jobs[j.JobID] = &cp
	return nil
}

func (r *inMemoryJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (r *inMemoryJobRepo) LatestByOrder(ctx context.Context, orderID uuid.UUID) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *domain.Job
	for _, j := range r.jobs {
		if j.OrderID != orderID {
			continue
		}
		if latest == nil || j.CreatedAt.After(latest.CreatedAt) {
			latest = j
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *inMemoryJobRepo) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return fmt.Errorf("job %s not found", id)
	}
	j.Status = domain.JobStatusCompleted
	j.CompletedAt = &at
	return nil
}

func (r *inMemoryJobRepo) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return fmt.Errorf("job %s not found", id)
	}
	j.Status = domain.JobStatusFailed
	j.ErrorMessage = &errorMessage
	j.Attempts++
	return nil
}

func (r *inMemoryJobRepo) List(ctx context.Context, status *domain.JobStatus, limit int) ([]domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Job
	for _, j := range r.jobs {
		if status != nil && j.Status != *status {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- In-Memory File Repo ---

type inMemoryFileRepo struct {
	mu    sync.RWMutex
	files map[uuid.UUID]*domain.StoredFile
}

func newInMemoryFileRepo() *inMemoryFileRepo {
	return &inMemoryFileRepo{files: make(map[uuid.UUID]*domain.StoredFile)}
}

func (r *inMemoryFileRepo) Create(ctx context.Context, f *domain.StoredFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.files[f.FileID] = &cp
	return nil
}

func (r *inMemoryFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StoredFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.files[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *inMemoryFileRepo) LatestOutputByOrder(ctx context.Context, orderID uuid.UUID) (*domain.StoredFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *domain.StoredFile
	for _, f := range r.files {
		if f.Kind != domain.FileKindOutput || f.OrderID == nil || *f.OrderID != orderID {
			continue
		}
		if latest == nil || f.CreatedAt.After(latest.CreatedAt) {
			latest = f
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

// --- In-Memory Payment Repo ---

type inMemoryPaymentRepo struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]*domain.Payment
}

func newInMemoryPaymentRepo() *inMemoryPaymentRepo {
	return &inMemoryPaymentRepo{payments: make(map[uuid.UUID]*domain.Payment)}
}

func (r *inMemoryPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.payments[p.PaymentID] = &cp
	return nil
}

func (r *inMemoryPaymentRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *domain.Payment
	for _, p := range r.payments {
		if p.OrderID != orderID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *inMemoryPaymentRepo) MarkRefunded(ctx context.Context, orderID uuid.UUID, amount float64, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.OrderID == orderID && p.Status == domain.PaymentStatusCompleted {
			p.Status = domain.PaymentStatusRefunded
			p.RefundAmount = &amount
			p.RefundReason = &reason
			return nil
		}
	}
	return fmt.Errorf("no completed payment for order %s", orderID)
}

// --- In-Memory Webhook Repo ---

type inMemoryWebhookRepo struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*domain.WebhookSubscription
}

func newInMemoryWebhookRepo() *inMemoryWebhookRepo {
	return &inMemoryWebhookRepo{subs: make(map[uuid.UUID]*domain.WebhookSubscription)}
}

func (r *inMemoryWebhookRepo) Create(ctx context.Context, sub *domain.WebhookSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sub
	r.subs[sub.WebhookID] = &cp
	return nil
}

func (r *inMemoryWebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.subs[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemoryWebhookRepo) List(ctx context.Context) ([]domain.WebhookSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.WebhookSubscription, 0, len(r.subs))
	for _, s := range r.subs {
		out = append(out, *s)
	}
	return out, nil
}

func (r *inMemoryWebhookRepo) ListActiveForEvent(ctx context.Context, eventType domain.EventType) ([]domain.WebhookSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.WebhookSubscription
	for _, s := range r.subs {
		if s.Active && s.Subscribes(eventType) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *inMemoryWebhookRepo) Update(ctx context.Context, sub *domain.WebhookSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[sub.WebhookID]; !ok {
		return fmt.Errorf("webhook %s not found", sub.WebhookID)
	}
	cp := *sub
	r.subs[sub.WebhookID] = &cp
	return nil
}

func (r *inMemoryWebhookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, id)
	return nil
}

func (r *inMemoryWebhookRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.subs[id]; ok {
		s.LastTriggered = &at
	}
	return nil
}
