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
)

func newTestPayment() *domain.Payment {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Payment{
		PaymentID:   uuid.New(),
		OrderID:     uuid.New(),
		Provider:    "paypal",
		ProviderRef: "CAP-123",
		Amount:      5.98,
		Currency:    "USD",
		Status:      domain.PaymentStatusCompleted,
		CreatedAt:   now,
		CompletedAt: &now,
	}
}

func paymentColumnNames() []string {
	return []string{
		"id", "order_id", "provider", "provider_ref", "amount", "currency",
		"status", "refund_amount", "refund_reason", "created_at", "completed_at",
	}
}

func TestPaymentRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepo(mock)
	p := newTestPayment()

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(p.PaymentID, p.OrderID, p.Provider, p.ProviderRef, p.Amount, p.Currency,
			string(p.Status), p.RefundAmount, p.RefundReason, p.CreatedAt, p.CompletedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_GetByOrderID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepo(mock)
	p := newTestPayment()

	mock.ExpectQuery("SELECT .+ FROM payments").
		WithArgs(p.OrderID).
		WillReturnRows(pgxmock.NewRows(paymentColumnNames()).AddRow(
			p.PaymentID, p.OrderID, p.Provider, p.ProviderRef, p.Amount, p.Currency,
			string(p.Status), p.RefundAmount, p.RefundReason, p.CreatedAt, p.CompletedAt,
		))

	result, err := repo.GetByOrderID(context.Background(), p.OrderID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, p.PaymentID, result.PaymentID)
	assert.Equal(t, domain.PaymentStatusCompleted, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_GetByOrderID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepo(mock)
	orderID := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM payments").
		WithArgs(orderID).
		WillReturnRows(pgxmock.NewRows(paymentColumnNames()))

	result, err := repo.GetByOrderID(context.Background(), orderID)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_MarkRefunded(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentRepo(mock)
	orderID := uuid.New()

	mock.ExpectExec("UPDATE payments SET status = 'refunded'").
		WithArgs(5.98, "customer request", orderID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.MarkRefunded(context.Background(), orderID, 5.98, "customer request")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
