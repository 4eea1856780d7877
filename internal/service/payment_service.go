package service

import (
	"context"
	"fmt"
	"time"

	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
	"filesolved/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentServiceImpl implements ports.PaymentService. It does not talk to
// the payment provider; it applies capture and refund outcomes the provider
// reported and drives the matching order transitions.
type PaymentServiceImpl struct {
	orderRepo   ports.OrderRepository
	paymentRepo ports.PaymentRepository
	fulfillment ports.FulfillmentService
	notifier    ports.EventNotifier
	log         zerolog.Logger
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	orderRepo ports.OrderRepository,
	paymentRepo ports.PaymentRepository,
	fulfillment ports.FulfillmentService,
	notifier ports.EventNotifier,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		fulfillment: fulfillment,
		notifier:    notifier,
		log:         log,
	}
}

// ConfirmCapture transitions a pending order to paid, records the capture
// and kicks off fulfillment in the background. A capture reported twice for
// the same order is acknowledged without side effects.
func (s *PaymentServiceImpl) ConfirmCapture(ctx context.Context, res ports.CaptureResult) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, res.OrderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("Order")
	}

	// Duplicate capture notification: already past pending.
	if order.Status != domain.OrderStatusPending {
		s.log.Debug().
			Str("order_id", order.OrderID.String()).
			Str("status", string(order.Status)).
			Msg("capture confirmed for non-pending order, ignoring")
		return order, nil
	}

	now := time.Now().UTC()
	if err := s.orderRepo.MarkPaid(ctx, order.OrderID, res.CaptureRef, now); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark paid: %w", err))
	}
	order.Status = domain.OrderStatusPaid
	order.CaptureRef = &res.CaptureRef
	order.PaidAt = &now

	payment := &domain.Payment{
		PaymentID:   uuid.New(),
		OrderID:     order.OrderID,
		Provider:    "paypal",
		ProviderRef: res.CaptureRef,
		Amount:      res.Amount,
		Currency:    res.Currency,
		Status:      domain.PaymentStatusCompleted,
		CreatedAt:   now,
		CompletedAt: &now,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		// The order is already paid; a lost payment record must not undo that.
		s.log.Error().Err(err).Str("order_id", order.OrderID.String()).Msg("failed to persist payment record")
	}

	s.log.Info().
		Str("order_id", order.OrderID.String()).
		Str("capture_ref", res.CaptureRef).
		Float64("amount", res.Amount).
		Msg("capture confirmed")

	s.notifier.Emit(ctx, domain.EventOrderPaid, map[string]any{
		"orderId":    order.OrderID.String(),
		"captureRef": res.CaptureRef,
		"amount":     res.Amount,
	})
	s.notifier.Emit(ctx, domain.EventPaymentCompleted, map[string]any{
		"orderId":   order.OrderID.String(),
		"paymentId": payment.PaymentID.String(),
		"amount":    res.Amount,
		"currency":  res.Currency,
	})

	// Fulfillment runs in the background; capture acknowledgement must not
	// wait for processing.
	if _, err := s.fulfillment.Trigger(ctx, order.OrderID); err != nil {
		s.log.Error().Err(err).Str("order_id", order.OrderID.String()).Msg("failed to trigger fulfillment after capture")
	}

	return order, nil
}

// FailCapture records a declined capture against a pending order.
func (s *PaymentServiceImpl) FailCapture(ctx context.Context, orderID uuid.UUID, reason string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return apperror.ErrNotFound("Order")
	}
	if order.Status != domain.OrderStatusPending {
		return apperror.ErrStateConflict("Capture failure reported for non-pending order")
	}

	if err := s.orderRepo.MarkFailed(ctx, orderID, reason); err != nil {
		return apperror.InternalError(fmt.Errorf("mark failed: %w", err))
	}

	payment := &domain.Payment{
		PaymentID: uuid.New(),
		OrderID:   orderID,
		Provider:  "paypal",
		Amount:    order.Amount,
		Currency:  order.Currency,
		Status:    domain.PaymentStatusFailed,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.log.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to persist failed payment record")
	}

	s.log.Warn().Str("order_id", orderID.String()).Str("reason", reason).Msg("capture failed")

	s.notifier.Emit(ctx, domain.EventPaymentFailed, map[string]any{
		"orderId": orderID.String(),
		"reason":  reason,
	})

	return nil
}

// Refund transitions a paid or completed order to refunded.
func (s *PaymentServiceImpl) Refund(ctx context.Context, orderID uuid.UUID, reason string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("Order")
	}
	if !order.IsRefundable() {
		return nil, apperror.ErrNotRefundable()
	}

	if err := s.orderRepo.MarkRefunded(ctx, orderID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark refunded: %w", err))
	}
	order.Status = domain.OrderStatusRefunded

	if err := s.paymentRepo.MarkRefunded(ctx, orderID, order.Amount, reason); err != nil {
		s.log.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to update payment record for refund")
	}

	s.log.Info().Str("order_id", orderID.String()).Str("reason", reason).Msg("order refunded")

	s.notifier.Emit(ctx, domain.EventOrderRefunded, map[string]any{
		"orderId": orderID.String(),
		"amount":  order.Amount,
		"reason":  reason,
	})

	return order, nil
}
