package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"filesolved/internal/catalog"
	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports/mocks"
	"filesolved/internal/processor"
	"filesolved/pkg/apperror"
)

type fulfillmentTestDeps struct {
	svc       *FulfillmentServiceImpl
	orderRepo *mocks.MockOrderRepository
	jobRepo   *mocks.MockJobRepository
	fileRepo  *mocks.MockFileRepository
	fileStore *mocks.MockFileStore
	lock      *mocks.MockOrderLock
	notifier  *mocks.MockEventNotifier
	registry  *processor.Registry
}

func setupFulfillmentService(t *testing.T) *fulfillmentTestDeps {
	ctrl := gomock.NewController(t)
	d := &fulfillmentTestDeps{
		orderRepo: mocks.NewMockOrderRepository(ctrl),
		jobRepo:   mocks.NewMockJobRepository(ctrl),
		fileRepo:  mocks.NewMockFileRepository(ctrl),
		fileStore: mocks.NewMockFileStore(ctrl),
		lock:      mocks.NewMockOrderLock(ctrl),
		notifier:  mocks.NewMockEventNotifier(ctrl),
	}
	// A registry whose processors never touch the disk keeps these tests on
	// the orchestration, not the artifact writing.
	d.registry = processor.NewRegistry()
	d.registry.Register(processor.Func(
		func(_ context.Context, _, outputBase string, _ *domain.Order) (string, error) {
			return outputBase + ".docx", nil
		}), "pdf_to_word")
	d.registry.Register(processor.Func(
		func(_ context.Context, _, _ string, _ *domain.Order) (string, error) {
			return "", errors.New("corrupt input")
		}), "ocr_pdf")

	d.svc = NewFulfillmentService(
		d.orderRepo, d.jobRepo, d.fileRepo, d.fileStore,
		catalog.MustDefault(), d.registry, d.lock, d.notifier, zerolog.Nop(),
	)
	return d
}

func paidOrder(serviceID string) *domain.Order {
	return &domain.Order{
		OrderID:       uuid.New(),
		ServiceID:     serviceID,
		ServiceName:   serviceID,
		CustomerEmail: "customer@example.com",
		FileID:        uuid.New(),
		FileName:      "input.pdf",
		Status:        domain.OrderStatusPaid,
		Amount:        2.99,
		Currency:      "USD",
	}
}

func TestFulfillmentService_ProcessOrder_Success(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()
	order := paidOrder("pdf_to_word")

	d.orderRepo.EXPECT().GetByID(ctx, order.OrderID).Return(order, nil)
	d.lock.EXPECT().Acquire(ctx, order.OrderID, fulfillmentLockTTL).Return(true, nil)
	d.lock.EXPECT().Release(gomock.Any(), order.OrderID).Return(nil)
	d.orderRepo.EXPECT().MarkProcessing(ctx, order.OrderID).Return(nil)
	d.notifier.EXPECT().Emit(ctx, domain.EventOrderProcessing, gomock.Any())

	d.fileRepo.EXPECT().GetByID(ctx, order.FileID).Return(&domain.StoredFile{
		FileID:      order.FileID,
		StoragePath: "/uploads/in.pdf",
	}, nil)
	d.fileStore.EXPECT().Exists("/uploads/in.pdf").Return(true)
	d.fileStore.EXPECT().OutputBase(order.OrderID).Return("/outputs/" + order.OrderID.String() + "_output")

	wantOutput := "/outputs/" + order.OrderID.String() + "_output.docx"
	d.orderRepo.EXPECT().
		MarkCompleted(ctx, order.OrderID, wantOutput, gomock.Any(), gomock.Any()).
		Return(nil)
	job := domain.NewJob(order.OrderID, domain.PriorityNormal)
	d.jobRepo.EXPECT().LatestByOrder(ctx, order.OrderID).Return(job, nil)
	d.jobRepo.EXPECT().MarkCompleted(ctx, job.JobID, gomock.Any()).Return(nil)

	var recorded *domain.StoredFile
	d.fileRepo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, f *domain.StoredFile) error {
			recorded = f
			return nil
		})

	d.notifier.EXPECT().Emit(ctx, domain.EventOrderCompleted, gomock.Any())
	d.notifier.EXPECT().Emit(ctx, domain.EventFileProcessed, gomock.Any())

	err := d.svc.ProcessOrder(ctx, order.OrderID)
	require.NoError(t, err)

	require.NotNil(t, recorded)
	assert.Equal(t, domain.FileKindOutput, recorded.Kind)
	assert.Equal(t, wantOutput, recorded.StoragePath)
	require.NotNil(t, recorded.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(domain.OutputRetention), *recorded.ExpiresAt, time.Minute)
}

func TestFulfillmentService_ProcessOrder_ProcessorFailure(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()
	order := paidOrder("ocr_pdf")

	d.orderRepo.EXPECT().GetByID(ctx, order.OrderID).Return(order, nil)
	d.lock.EXPECT().Acquire(ctx, order.OrderID, fulfillmentLockTTL).Return(true, nil)
	d.lock.EXPECT().Release(gomock.Any(), order.OrderID).Return(nil)
	d.orderRepo.EXPECT().MarkProcessing(ctx, order.OrderID).Return(nil)
	d.notifier.EXPECT().Emit(ctx, domain.EventOrderProcessing, gomock.Any())

	d.fileRepo.EXPECT().GetByID(ctx, order.FileID).Return(&domain.StoredFile{
		FileID:      order.FileID,
		StoragePath: "/uploads/in.pdf",
	}, nil)
	d.fileStore.EXPECT().Exists("/uploads/in.pdf").Return(true)
	d.fileStore.EXPECT().OutputBase(order.OrderID).Return("/outputs/base")

	d.orderRepo.EXPECT().MarkFailed(ctx, order.OrderID, "corrupt input").Return(nil)
	job := domain.NewJob(order.OrderID, domain.PriorityNormal)
	d.jobRepo.EXPECT().LatestByOrder(ctx, order.OrderID).Return(job, nil)
	d.jobRepo.EXPECT().MarkFailed(ctx, job.JobID, "corrupt input").Return(nil)
	d.notifier.EXPECT().Emit(ctx, domain.EventOrderFailed, gomock.Any())

	err := d.svc.ProcessOrder(ctx, order.OrderID)
	require.Error(t, err)
	assert.Equal(t, "PRC_001", apperror.From(err).Code)
}

func TestFulfillmentService_ProcessOrder_InputFileMissing(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()
	order := paidOrder("pdf_to_word")

	d.orderRepo.EXPECT().GetByID(ctx, order.OrderID).Return(order, nil)
	d.lock.EXPECT().Acquire(ctx, order.OrderID, fulfillmentLockTTL).Return(true, nil)
	d.lock.EXPECT().Release(gomock.Any(), order.OrderID).Return(nil)
	d.orderRepo.EXPECT().MarkProcessing(ctx, order.OrderID).Return(nil)
	d.notifier.EXPECT().Emit(ctx, domain.EventOrderProcessing, gomock.Any())

	d.fileRepo.EXPECT().GetByID(ctx, order.FileID).Return(&domain.StoredFile{
		FileID:      order.FileID,
		StoragePath: "/uploads/gone.pdf",
	}, nil)
	d.fileStore.EXPECT().Exists("/uploads/gone.pdf").Return(false)

	d.orderRepo.EXPECT().MarkFailed(ctx, order.OrderID, gomock.Any()).Return(nil)
	d.jobRepo.EXPECT().LatestByOrder(ctx, order.OrderID).Return(nil, nil)
	d.notifier.EXPECT().Emit(ctx, domain.EventOrderFailed, gomock.Any())

	err := d.svc.ProcessOrder(ctx, order.OrderID)
	require.Error(t, err)
	assert.Equal(t, "PRC_001", apperror.From(err).Code)
}

func TestFulfillmentService_ProcessOrder_LockContention(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()
	order := paidOrder("pdf_to_word")

	d.orderRepo.EXPECT().GetByID(ctx, order.OrderID).Return(order, nil)
	d.lock.EXPECT().Acquire(ctx, order.OrderID, fulfillmentLockTTL).Return(false, nil)

	err := d.svc.ProcessOrder(ctx, order.OrderID)
	require.Error(t, err)
	assert.Equal(t, "PRC_002", apperror.From(err).Code)
}

func TestFulfillmentService_ProcessOrder_OrderNotFound(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()
	orderID := uuid.New()

	d.orderRepo.EXPECT().GetByID(ctx, orderID).Return(nil, nil)

	err := d.svc.ProcessOrder(ctx, orderID)
	require.Error(t, err)
	assert.Equal(t, "ORD_001", apperror.From(err).Code)
}

// expectParkedRun wires the background run launched by Trigger and friends
// so it bails at the lock and signals completion, keeping mock calls inside
// the test's lifetime.
func expectParkedRun(d *fulfillmentTestDeps, order *domain.Order) chan struct{} {
	done := make(chan struct{})
	d.orderRepo.EXPECT().GetByID(gomock.Any(), order.OrderID).Return(order, nil)
	d.lock.EXPECT().Acquire(gomock.Any(), order.OrderID, fulfillmentLockTTL).
		DoAndReturn(func(context.Context, uuid.UUID, time.Duration) (bool, error) {
			close(done)
			return false, nil
		})
	return done
}

func waitForRun(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background run never started")
	}
}

func TestFulfillmentService_Trigger(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()
	order := paidOrder("pdf_to_word")

	d.orderRepo.EXPECT().GetByID(ctx, order.OrderID).Return(order, nil)
	var created *domain.Job
	d.jobRepo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, j *domain.Job) error {
			created = j
			return nil
		})
	done := expectParkedRun(d, order)

	job, err := d.svc.Trigger(ctx, order.OrderID)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, created.JobID, job.JobID)
	assert.Equal(t, domain.PriorityNormal, job.Priority)
	assert.Equal(t, domain.JobStatusQueued, job.Status)

	waitForRun(t, done)
}

func TestFulfillmentService_Trigger_NotPaid(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()

	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusProcessing,
		domain.OrderStatusCompleted,
		domain.OrderStatusFailed,
	} {
		orderID := uuid.New()
		d.orderRepo.EXPECT().GetByID(ctx, orderID).Return(&domain.Order{
			OrderID: orderID,
			Status:  status,
		}, nil)

		_, err := d.svc.Trigger(ctx, orderID)
		require.Error(t, err, string(status))
		assert.Equal(t, "ORD_002", apperror.From(err).Code)
	}
}

func TestFulfillmentService_Reprocess(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()
	order := paidOrder("pdf_to_word")
	order.Status = domain.OrderStatusFailed

	d.orderRepo.EXPECT().GetByID(ctx, order.OrderID).Return(order, nil)
	d.orderRepo.EXPECT().ResetForReprocess(ctx, order.OrderID).Return(nil)
	d.jobRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	done := expectParkedRun(d, order)

	job, err := d.svc.Reprocess(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, job.Priority)

	waitForRun(t, done)
}

func TestFulfillmentService_TriggerBatch_SizeLimits(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()

	_, err := d.svc.TriggerBatch(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, "VAL_004", apperror.From(err).Code)

	ids := make([]uuid.UUID, 11)
	for i := range ids {
		ids[i] = uuid.New()
	}
	_, err = d.svc.TriggerBatch(ctx, ids)
	require.Error(t, err)
	assert.Equal(t, "VAL_004", apperror.From(err).Code)
}

func TestFulfillmentService_TriggerBatch_PerOrderIsolation(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()

	paid := paidOrder("pdf_to_word")
	pending := uuid.New()
	missing := uuid.New()

	d.orderRepo.EXPECT().GetByID(ctx, paid.OrderID).Return(paid, nil)
	d.jobRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	done := expectParkedRun(d, paid)

	d.orderRepo.EXPECT().GetByID(ctx, pending).Return(&domain.Order{
		OrderID: pending,
		Status:  domain.OrderStatusPending,
	}, nil)
	d.orderRepo.EXPECT().GetByID(ctx, missing).Return(nil, nil)

	results, err := d.svc.TriggerBatch(ctx, []uuid.UUID{paid.OrderID, pending, missing})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "queued", results[0].Status)
	require.NotNil(t, results[0].JobID)

	assert.Equal(t, "error", results[1].Status)
	assert.Equal(t, "order not paid", results[1].Message)

	assert.Equal(t, "error", results[2].Status)
	assert.Equal(t, "order not found", results[2].Message)

	waitForRun(t, done)
}

func TestFulfillmentService_Status(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()
	order := paidOrder("pdf_to_word")
	order.Status = domain.OrderStatusCompleted
	output := "/outputs/done.docx"
	ms := int64(42)
	order.OutputFile = &output
	order.ProcessingTimeMs = &ms

	job := domain.NewJob(order.OrderID, domain.PriorityNormal)
	d.orderRepo.EXPECT().GetByID(ctx, order.OrderID).Return(order, nil)
	d.jobRepo.EXPECT().LatestByOrder(ctx, order.OrderID).Return(job, nil)

	st, err := d.svc.Status(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, st.OrderStatus)
	assert.Equal(t, job, st.Job)
	assert.Equal(t, &output, st.OutputFile)
	assert.Equal(t, &ms, st.ProcessingTimeMs)
}

func TestFulfillmentService_ListJobs(t *testing.T) {
	d := setupFulfillmentService(t)
	ctx := context.Background()

	status := domain.JobStatusQueued
	d.jobRepo.EXPECT().List(ctx, &status, 20).Return([]domain.Job{
		*domain.NewJob(uuid.New(), domain.PriorityNormal),
	}, nil)

	jobs, err := d.svc.ListJobs(ctx, &status, 20)
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	d.jobRepo.EXPECT().List(ctx, nil, 50).Return(nil, errors.New("db down"))
	_, err = d.svc.ListJobs(ctx, nil, 50)
	require.Error(t, err)
	assert.Equal(t, "SYS_001", apperror.From(err).Code)
}
