package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
)

func newTestOrder() *domain.Order {
	return &domain.Order{
		OrderID:        uuid.New(),
		ServiceID:      "pdf_to_word",
		ServiceName:    "PDF to Word",
		ServiceType:    domain.ServiceTypeConversion,
		Unit:           domain.UnitPerFile,
		BasePriceCents: 299,
		FileID:         uuid.New(),
		FileName:       "contract.pdf",
		CustomerEmail:  "customer@example.com",
		CustomerName:   "Pat Customer",
		Quantity:       2,
		Amount:         5.98,
		Currency:       "USD",
		Status:         domain.OrderStatusPending,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
}

func orderColumnNames() []string {
	return []string{
		"id", "service_id", "service_name", "service_type", "unit", "base_price_cents",
		"file_id", "file_name", "customer_email", "customer_name", "quantity", "amount", "currency",
		"status", "extra_fields", "included_services", "capture_ref", "output_file",
		"processing_time_ms", "error_message", "created_at", "paid_at", "processed_at", "completed_at",
	}
}

func orderRow(o *domain.Order) *pgxmock.Rows {
	return pgxmock.NewRows(orderColumnNames()).AddRow(
		o.OrderID, o.ServiceID, o.ServiceName, string(o.ServiceType), string(o.Unit), o.BasePriceCents,
		o.FileID, o.FileName, o.CustomerEmail, o.CustomerName, o.Quantity, o.Amount, o.Currency,
		string(o.Status), o.ExtraFields, o.IncludedServices, o.CaptureRef, o.OutputFile,
		o.ProcessingTimeMs, o.ErrorMessage, o.CreatedAt, o.PaidAt, o.ProcessedAt, o.CompletedAt,
	)
}

func TestOrderRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(o.OrderID, o.ServiceID, o.ServiceName, string(o.ServiceType), string(o.Unit), o.BasePriceCents,
			o.FileID, o.FileName, o.CustomerEmail, o.CustomerName, o.Quantity, o.Amount, o.Currency,
			string(o.Status), o.ExtraFields, o.IncludedServices, o.CaptureRef, o.OutputFile,
			o.ProcessingTimeMs, o.ErrorMessage, o.CreatedAt, o.PaidAt, o.ProcessedAt, o.CompletedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), o)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()

	mock.ExpectQuery("SELECT .+ FROM orders WHERE id").
		WithArgs(o.OrderID).
		WillReturnRows(orderRow(o))

	result, err := repo.GetByID(context.Background(), o.OrderID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, o.OrderID, result.OrderID)
	assert.Equal(t, o.ServiceID, result.ServiceID)
	assert.Equal(t, domain.OrderStatusPending, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM orders WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(orderColumnNames()))

	result, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_MarkPaid(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	id := uuid.New()
	paidAt := time.Now().UTC()

	mock.ExpectExec("UPDATE orders SET status = 'paid'").
		WithArgs("CAP-123", paidAt, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.MarkPaid(context.Background(), id, "CAP-123", paidAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_MarkPaid_NotPending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	id := uuid.New()
	paidAt := time.Now().UTC()

	// Guarded update touches zero rows when the order left pending already.
	mock.ExpectExec("UPDATE orders SET status = 'paid'").
		WithArgs("CAP-123", paidAt, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.MarkPaid(context.Background(), id, "CAP-123", paidAt)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_MarkCompleted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	id := uuid.New()
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE orders SET status = 'completed'").
		WithArgs("/outputs/x_output.docx", int64(1234), at, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.MarkCompleted(context.Background(), id, "/outputs/x_output.docx", 1234, at)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_ResetForReprocess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE orders SET status = 'paid', output_file = NULL").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.ResetForReprocess(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_List_WithStatusFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()
	status := domain.OrderStatusPending

	mock.ExpectQuery("SELECT .+ FROM orders WHERE status").
		WithArgs(string(status), 20, 0).
		WillReturnRows(orderRow(o))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(string(status)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	orders, total, err := repo.List(context.Background(), ports.OrderListParams{
		Status:   &status,
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(1), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_List_DefaultsPagination(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM orders").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(orderColumnNames()))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	orders, total, err := repo.List(context.Background(), ports.OrderListParams{Page: -3, PageSize: 0})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, int64(0), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
