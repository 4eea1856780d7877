package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"filesolved/internal/catalog"
	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
	"filesolved/internal/processor"
	"filesolved/internal/telemetry"
	"filesolved/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// fulfillmentLockTTL bounds how long a crashed run keeps an order locked.
	fulfillmentLockTTL = 5 * time.Minute
	// runTimeout bounds one background fulfillment run.
	runTimeout = 5 * time.Minute
)

// FulfillmentServiceImpl implements ports.FulfillmentService. It is the only
// writer of order status transitions after payment, and the only component
// that executes processors.
type FulfillmentServiceImpl struct {
	orderRepo ports.OrderRepository
	jobRepo   ports.JobRepository
	fileRepo  ports.FileRepository
	fileStore ports.FileStore
	cat       *catalog.Catalog
	registry  *processor.Registry
	lock      ports.OrderLock
	notifier  ports.EventNotifier
	log       zerolog.Logger
}

// NewFulfillmentService creates a new FulfillmentServiceImpl.
func NewFulfillmentService(
	orderRepo ports.OrderRepository,
	jobRepo ports.JobRepository,
	fileRepo ports.FileRepository,
	fileStore ports.FileStore,
	cat *catalog.Catalog,
	registry *processor.Registry,
	lock ports.OrderLock,
	notifier ports.EventNotifier,
	log zerolog.Logger,
) *FulfillmentServiceImpl {
	return &FulfillmentServiceImpl{
		orderRepo: orderRepo,
		jobRepo:   jobRepo,
		fileRepo:  fileRepo,
		fileStore: fileStore,
		cat:       cat,
		registry:  registry,
		lock:      lock,
		notifier:  notifier,
		log:       log,
	}
}

// ProcessOrder runs one fulfillment attempt end to end. On success the order
// lands in completed with its output recorded; on failure the order and its
// newest job record the error and the error is returned to the caller, who
// must not let it escape an already-answered HTTP request.
func (s *FulfillmentServiceImpl) ProcessOrder(ctx context.Context, orderID uuid.UUID) error {
	started := time.Now()

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		// Caller error; nothing to transition.
		return apperror.ErrNotFound("Order")
	}

	acquired, err := s.lock.Acquire(ctx, orderID, fulfillmentLockTTL)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("acquire order lock: %w", err))
	}
	if !acquired {
		return apperror.ErrProcessingInFlight()
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), orderID); err != nil {
			s.log.Warn().Err(err).Str("order_id", orderID.String()).Msg("failed to release order lock")
		}
	}()

	if err := s.orderRepo.MarkProcessing(ctx, orderID); err != nil {
		return apperror.InternalError(fmt.Errorf("mark processing: %w", err))
	}
	order.Status = domain.OrderStatusProcessing

	s.notifier.Emit(ctx, domain.EventOrderProcessing, map[string]any{
		"orderId":   orderID.String(),
		"serviceId": order.ServiceID,
	})

	outputPath, err := s.run(ctx, order)
	if err != nil {
		s.recordFailure(ctx, order, err)
		telemetry.OrdersFailed.Inc()
		return err
	}

	elapsed := time.Since(started)
	processingMs := elapsed.Milliseconds()
	now := time.Now().UTC()

	if err := s.orderRepo.MarkCompleted(ctx, orderID, outputPath, processingMs, now); err != nil {
		return apperror.InternalError(fmt.Errorf("mark completed: %w", err))
	}

	if job, jerr := s.jobRepo.LatestByOrder(ctx, orderID); jerr == nil && job != nil {
		if err := s.jobRepo.MarkCompleted(ctx, job.JobID, now); err != nil {
			s.log.Warn().Err(err).Str("job_id", job.JobID.String()).Msg("failed to mark job completed")
		}
	}

	expiresAt := now.Add(domain.OutputRetention)
	output := &domain.StoredFile{
		FileID:       uuid.New(),
		OrderID:      &orderID,
		Kind:         domain.FileKindOutput,
		OriginalName: filepath.Base(outputPath),
		StoragePath:  outputPath,
		ExpiresAt:    &expiresAt,
		CreatedAt:    now,
	}
	if err := s.fileRepo.Create(ctx, output); err != nil {
		s.log.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to record output file")
	}

	telemetry.OrdersCompleted.Inc()
	telemetry.ProcessingDuration.Observe(elapsed.Seconds())
	s.log.Info().
		Str("order_id", orderID.String()).
		Str("output", outputPath).
		Int64("processing_ms", processingMs).
		Msg("order processed")

	s.notifier.Emit(ctx, domain.EventOrderCompleted, map[string]any{
		"orderId":          orderID.String(),
		"serviceId":        order.ServiceID,
		"processingTimeMs": processingMs,
	})
	s.notifier.Emit(ctx, domain.EventFileProcessed, map[string]any{
		"orderId": orderID.String(),
		"fileId":  output.FileID.String(),
	})

	return nil
}

// run resolves the input and service and executes the processor.
func (s *FulfillmentServiceImpl) run(ctx context.Context, order *domain.Order) (string, error) {
	input, err := s.fileRepo.GetByID(ctx, order.FileID)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("lookup input file: %w", err))
	}
	if input == nil || !s.fileStore.Exists(input.StoragePath) {
		return "", apperror.ErrInputFileMissing()
	}

	if _, ok := s.cat.ByID(order.ServiceID); !ok {
		return "", apperror.ErrProcessing("service not found")
	}

	outputPath, err := s.registry.Resolve(order.ServiceID).
		Execute(ctx, input.StoragePath, s.fileStore.OutputBase(order.OrderID), order)
	if err != nil {
		return "", apperror.ErrProcessing(err.Error())
	}
	return outputPath, nil
}

// recordFailure persists the failure on the order and its newest job and
// emits order.failed.
func (s *FulfillmentServiceImpl) recordFailure(ctx context.Context, order *domain.Order, cause error) {
	msg := apperror.From(cause).Message

	if err := s.orderRepo.MarkFailed(ctx, order.OrderID, msg); err != nil {
		s.log.Error().Err(err).Str("order_id", order.OrderID.String()).Msg("failed to mark order failed")
	}
	if job, err := s.jobRepo.LatestByOrder(ctx, order.OrderID); err == nil && job != nil {
		if err := s.jobRepo.MarkFailed(ctx, job.JobID, msg); err != nil {
			s.log.Warn().Err(err).Str("job_id", job.JobID.String()).Msg("failed to mark job failed")
		}
	}

	s.log.Error().
		Str("order_id", order.OrderID.String()).
		Str("service_id", order.ServiceID).
		Str("error", msg).
		Msg("order processing failed")

	s.notifier.Emit(ctx, domain.EventOrderFailed, map[string]any{
		"orderId": order.OrderID.String(),
		"error":   msg,
	})
}

// Trigger starts fulfillment for a paid order and returns the created job
// without waiting for the run to finish.
func (s *FulfillmentServiceImpl) Trigger(ctx context.Context, orderID uuid.UUID) (*domain.Job, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("Order")
	}
	if order.Status != domain.OrderStatusPaid {
		return nil, apperror.ErrOrderNotPaid()
	}

	job := domain.NewJob(orderID, domain.PriorityNormal)
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create job: %w", err))
	}

	s.runAsync(orderID)
	return job, nil
}

// Reprocess resets an order back to paid, clears prior outcome fields and
// re-triggers fulfillment with high priority. Admin-only; allowed from any
// status.
func (s *FulfillmentServiceImpl) Reprocess(ctx context.Context, orderID uuid.UUID) (*domain.Job, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("Order")
	}

	if err := s.orderRepo.ResetForReprocess(ctx, orderID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reset order: %w", err))
	}

	job := domain.NewJob(orderID, domain.PriorityHigh)
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create job: %w", err))
	}

	s.log.Info().Str("order_id", orderID.String()).Str("job_id", job.JobID.String()).Msg("order reprocess requested")

	s.runAsync(orderID)
	return job, nil
}

// TriggerBatch fires fulfillment for up to 10 orders. The batch is rejected
// wholesale when empty or oversized; otherwise each id succeeds or fails
// independently and the result list always matches the input length.
func (s *FulfillmentServiceImpl) TriggerBatch(ctx context.Context, orderIDs []uuid.UUID) ([]ports.BatchResult, error) {
	if len(orderIDs) == 0 || len(orderIDs) > 10 {
		return nil, apperror.ErrBatchSize()
	}

	results := make([]ports.BatchResult, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			results = append(results, ports.BatchResult{
				OrderID: orderID.String(), Status: "error", Message: "internal error",
			})
			continue
		}
		if order == nil {
			results = append(results, ports.BatchResult{
				OrderID: orderID.String(), Status: "error", Message: "order not found",
			})
			continue
		}
		if order.Status != domain.OrderStatusPaid {
			results = append(results, ports.BatchResult{
				OrderID: orderID.String(), Status: "error", Message: "order not paid",
			})
			continue
		}

		job := domain.NewJob(orderID, domain.PriorityBatch)
		if err := s.jobRepo.Create(ctx, job); err != nil {
			results = append(results, ports.BatchResult{
				OrderID: orderID.String(), Status: "error", Message: "failed to create job",
			})
			continue
		}

		s.runAsync(orderID)
		jobID := job.JobID
		results = append(results, ports.BatchResult{
			OrderID: orderID.String(), Status: "queued", JobID: &jobID,
		})
	}

	return results, nil
}

// Status returns the poll view over an order and its newest job.
func (s *FulfillmentServiceImpl) Status(ctx context.Context, orderID uuid.UUID) (*ports.ProcessingStatus, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("Order")
	}

	job, err := s.jobRepo.LatestByOrder(ctx, orderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("latest job: %w", err))
	}

	return &ports.ProcessingStatus{
		OrderID:          order.OrderID,
		OrderStatus:      order.Status,
		Job:              job,
		OutputFile:       order.OutputFile,
		ProcessingTimeMs: order.ProcessingTimeMs,
	}, nil
}

// ListJobs lists jobs, optionally filtered by status.
func (s *FulfillmentServiceImpl) ListJobs(ctx context.Context, status *domain.JobStatus, limit int) ([]domain.Job, error) {
	jobs, err := s.jobRepo.List(ctx, status, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list jobs: %w", err))
	}
	return jobs, nil
}

// runAsync launches one fulfillment run in the background. ProcessOrder's
// error is already persisted on the order and job; here it is only logged so
// it can never surface as an unhandled failure.
func (s *FulfillmentServiceImpl) runAsync(orderID uuid.UUID) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().
					Str("order_id", orderID.String()).
					Interface("panic", r).
					Msg("fulfillment run panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if err := s.ProcessOrder(ctx, orderID); err != nil {
			s.log.Debug().Err(err).Str("order_id", orderID.String()).Msg("background fulfillment run ended with error")
		}
	}()
}
