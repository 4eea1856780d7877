package postgres

import (
	"context"
	"errors"
	"fmt"

	"filesolved/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentRepo implements ports.PaymentRepository.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentColumns = `id, order_id, provider, provider_ref, amount, currency,
	status, refund_amount, refund_reason, created_at, completed_at`

// Create inserts a new payment record.
func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := r.pool.Exec(ctx, query,
		p.PaymentID, p.OrderID, p.Provider, p.ProviderRef, p.Amount, p.Currency,
		string(p.Status), p.RefundAmount, p.RefundReason, p.CreatedAt, p.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByOrderID returns the newest payment record for an order, or (nil, nil)
// when none exists.
func (r *PaymentRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE order_id = $1 ORDER BY created_at DESC LIMIT 1`

	p := &domain.Payment{}
	var status string
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&p.PaymentID, &p.OrderID, &p.Provider, &p.ProviderRef, &p.Amount, &p.Currency,
		&status, &p.RefundAmount, &p.RefundReason, &p.CreatedAt, &p.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment by order id: %w", err)
	}
	p.Status = domain.PaymentStatus(status)
	return p, nil
}

// MarkRefunded records the refund on the order's completed payment.
func (r *PaymentRepo) MarkRefunded(ctx context.Context, orderID uuid.UUID, amount float64, reason string) error {
	query := `UPDATE payments SET status = 'refunded', refund_amount = $1, refund_reason = $2
		WHERE order_id = $3 AND status = 'completed'`

	if _, err := r.pool.Exec(ctx, query, amount, reason, orderID); err != nil {
		return fmt.Errorf("mark payment refunded: %w", err)
	}
	return nil
}
