package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"filesolved/internal/catalog"
	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
	"filesolved/internal/telemetry"
	"filesolved/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderServiceImpl implements ports.OrderService.
type OrderServiceImpl struct {
	orderRepo ports.OrderRepository
	fileRepo  ports.FileRepository
	fileStore ports.FileStore
	cat       *catalog.Catalog
	notifier  ports.EventNotifier
	log       zerolog.Logger
}

// NewOrderService creates a new OrderServiceImpl.
func NewOrderService(
	orderRepo ports.OrderRepository,
	fileRepo ports.FileRepository,
	fileStore ports.FileStore,
	cat *catalog.Catalog,
	notifier ports.EventNotifier,
	log zerolog.Logger,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
		fileRepo:  fileRepo,
		fileStore: fileStore,
		cat:       cat,
		notifier:  notifier,
		log:       log,
	}
}

// Create validates the request against the catalog, snapshots the service
// fields, prices the order and persists it in pending state.
func (s *OrderServiceImpl) Create(ctx context.Context, req ports.CreateOrderRequest) (*domain.Order, error) {
	switch {
	case req.ServiceID == "":
		return nil, apperror.Validation("serviceId is required")
	case req.FileID == uuid.Nil:
		return nil, apperror.Validation("fileId is required")
	case req.FileName == "":
		return nil, apperror.Validation("fileName is required")
	case req.CustomerEmail == "":
		return nil, apperror.Validation("customerEmail is required")
	case req.CustomerName == "":
		return nil, apperror.Validation("customerName is required")
	}

	svc, ok := s.cat.ByID(req.ServiceID)
	if !ok {
		return nil, apperror.ErrNotFound("Service")
	}
	if !svc.Enabled {
		return nil, apperror.ErrServiceNotAvailable()
	}

	if errs := catalog.ValidateExtraFields(svc, req.ExtraFields); len(errs) > 0 {
		return nil, apperror.ErrExtraFieldValidation(errs)
	}

	file, err := s.fileRepo.GetByID(ctx, req.FileID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup file: %w", err))
	}
	if file == nil {
		return nil, apperror.ErrNotFound("File")
	}

	order := &domain.Order{
		OrderID:        uuid.New(),
		ServiceID:      svc.ID,
		ServiceName:    svc.Name,
		ServiceType:    svc.Type,
		Unit:           svc.Unit,
		BasePriceCents: svc.BasePriceCents,
		FileID:         req.FileID,
		FileName:       req.FileName,
		CustomerEmail:  req.CustomerEmail,
		CustomerName:   req.CustomerName,
		Quantity:       max(req.Quantity, 1),
		Amount:         catalog.ResolvePrice(svc, req.Quantity),
		Currency:       "USD",
		Status:         domain.OrderStatusPending,
		ExtraFields:    req.ExtraFields,
		CreatedAt:      time.Now().UTC(),
	}
	if svc.IsBundle() {
		order.IncludedServices = svc.Includes
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create order: %w", err))
	}

	telemetry.OrdersCreated.Inc()
	s.log.Info().
		Str("order_id", order.OrderID.String()).
		Str("service_id", order.ServiceID).
		Float64("amount", order.Amount).
		Msg("order created")

	s.notifier.Emit(ctx, domain.EventOrderCreated, map[string]any{
		"orderId":   order.OrderID.String(),
		"serviceId": order.ServiceID,
		"amount":    order.Amount,
	})

	return order, nil
}

// Get loads one order by id.
func (s *OrderServiceImpl) Get(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("Order")
	}
	return order, nil
}

// Download resolves the output artifact of a completed order and opens it
// for streaming. The caller owns closing the reader.
func (s *OrderServiceImpl) Download(ctx context.Context, orderID uuid.UUID) (*domain.StoredFile, io.ReadCloser, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.Status != domain.OrderStatusCompleted || order.OutputFile == nil {
		return nil, nil, apperror.ErrOrderNotCompleted()
	}

	file, err := s.fileRepo.LatestOutputByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("lookup output file: %w", err))
	}
	if file == nil || !s.fileStore.Exists(file.StoragePath) {
		return nil, nil, apperror.ErrNotFound("Output file")
	}

	rc, err := s.fileStore.Open(file.StoragePath)
	if err != nil {
		return nil, nil, apperror.ErrStorageError(fmt.Errorf("open output: %w", err))
	}

	return file, rc, nil
}
