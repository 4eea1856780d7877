package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `id, service_id, service_name, service_type, unit, base_price_cents,
	file_id, file_name, customer_email, customer_name, quantity, amount, currency,
	status, extra_fields, included_services, capture_ref, output_file,
	processing_time_ms, error_message, created_at, paid_at, processed_at, completed_at`

// Create inserts a new order.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`

	_, err := r.pool.Exec(ctx, query,
		o.OrderID, o.ServiceID, o.ServiceName, string(o.ServiceType), string(o.Unit), o.BasePriceCents,
		o.FileID, o.FileName, o.CustomerEmail, o.CustomerName, o.Quantity, o.Amount, o.Currency,
		string(o.Status), o.ExtraFields, o.IncludedServices, o.CaptureRef, o.OutputFile,
		o.ProcessingTimeMs, o.ErrorMessage, o.CreatedAt, o.PaidAt, o.ProcessedAt, o.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID fetches an order by its UUID. Returns (nil, nil) when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return o, nil
}

// MarkPaid transitions pending -> paid and records the capture reference.
func (r *OrderRepo) MarkPaid(ctx context.Context, id uuid.UUID, captureRef string, paidAt time.Time) error {
	query := `UPDATE orders SET status = 'paid', capture_ref = $1, paid_at = $2
		WHERE id = $3 AND status = 'pending'`

	tag, err := r.pool.Exec(ctx, query, captureRef, paidAt, id)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s not pending", id)
	}
	return nil
}

// MarkProcessing transitions paid -> processing.
func (r *OrderRepo) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE orders SET status = 'processing' WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("mark order processing: %w", err)
	}
	return nil
}

// MarkCompleted records the produced artifact and completion timestamps.
func (r *OrderRepo) MarkCompleted(ctx context.Context, id uuid.UUID, outputFile string, processingTimeMs int64, at time.Time) error {
	query := `UPDATE orders SET status = 'completed', output_file = $1,
		processing_time_ms = $2, error_message = NULL, processed_at = $3, completed_at = $3
		WHERE id = $4`

	if _, err := r.pool.Exec(ctx, query, outputFile, processingTimeMs, at, id); err != nil {
		return fmt.Errorf("mark order completed: %w", err)
	}
	return nil
}

// MarkFailed records the failure message.
func (r *OrderRepo) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `UPDATE orders SET status = 'failed', error_message = $1 WHERE id = $2`

	if _, err := r.pool.Exec(ctx, query, errorMessage, id); err != nil {
		return fmt.Errorf("mark order failed: %w", err)
	}
	return nil
}

// MarkRefunded transitions a refundable order to refunded.
func (r *OrderRepo) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE orders SET status = 'refunded' WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("mark order refunded: %w", err)
	}
	return nil
}

// ResetForReprocess puts the order back to paid and clears the previous
// run's outcome so a fresh fulfillment attempt starts clean.
func (r *OrderRepo) ResetForReprocess(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE orders SET status = 'paid', output_file = NULL,
		processing_time_ms = NULL, error_message = NULL, processed_at = NULL, completed_at = NULL
		WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("reset order for reprocess: %w", err)
	}
	return nil
}

// List returns a page of orders, newest first, with the unpaged total.
func (r *OrderRepo) List(ctx context.Context, params ports.OrderListParams) ([]domain.Order, int64, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var (
		rows pgx.Rows
		err  error
	)
	if params.Status != nil {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.pool.Query(ctx, query, string(*params.Status), pageSize, offset)
	} else {
		query := `SELECT ` + orderColumns + ` FROM orders
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.pool.Query(ctx, query, pageSize, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	var total int64
	if params.Status != nil {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, string(*params.Status)).Scan(&total)
	} else {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	return orders, total, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	o := &domain.Order{}
	var serviceType, unit, status string
	err := row.Scan(
		&o.OrderID, &o.ServiceID, &o.ServiceName, &serviceType, &unit, &o.BasePriceCents,
		&o.FileID, &o.FileName, &o.CustomerEmail, &o.CustomerName, &o.Quantity, &o.Amount, &o.Currency,
		&status, &o.ExtraFields, &o.IncludedServices, &o.CaptureRef, &o.OutputFile,
		&o.ProcessingTimeMs, &o.ErrorMessage, &o.CreatedAt, &o.PaidAt, &o.ProcessedAt, &o.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ServiceType = domain.ServiceType(serviceType)
	o.Unit = domain.PricingUnit(unit)
	o.Status = domain.OrderStatus(status)
	return o, nil
}
