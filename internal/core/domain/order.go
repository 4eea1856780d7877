package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// orderTransitions lists the legal state machine edges. Admin reprocess is a
// deliberate reset outside these edges (any state back to paid).
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusFailed},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusRefunded},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusFailed},
	OrderStatusCompleted:  {OrderStatusRefunded},
	OrderStatusFailed:     {OrderStatusPaid},
	OrderStatusRefunded:   {},
}

// Order is a purchase of one catalog service against one uploaded file.
// Service name, type, unit and base price are snapshotted from the catalog at
// creation time. Orders are never deleted, only transitioned.
type Order struct {
	OrderID          uuid.UUID         `json:"orderId"`
	ServiceID        string            `json:"serviceId"`
	ServiceName      string            `json:"serviceName"`
	ServiceType      ServiceType       `json:"serviceType"`
	Unit             PricingUnit       `json:"unit"`
	BasePriceCents   int64             `json:"basePriceCents"`
	FileID           uuid.UUID         `json:"fileId"`
	FileName         string            `json:"fileName"`
	CustomerEmail    string            `json:"customerEmail"`
	CustomerName     string            `json:"customerName"`
	Quantity         int               `json:"quantity"`
	Amount           float64           `json:"amount"` // decimal currency units
	Currency         string            `json:"currency"`
	Status           OrderStatus       `json:"status"`
	ExtraFields      map[string]string `json:"extraFields,omitempty"`
	IncludedServices []string          `json:"includedServices,omitempty"`
	CaptureRef       *string           `json:"captureRef,omitempty"`
	OutputFile       *string           `json:"outputFile,omitempty"`
	ProcessingTimeMs *int64            `json:"processingTimeMs,omitempty"`
	ErrorMessage     *string           `json:"errorMessage,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	PaidAt           *time.Time        `json:"paidAt,omitempty"`
	ProcessedAt      *time.Time        `json:"processedAt,omitempty"`
	CompletedAt      *time.Time        `json:"completedAt,omitempty"`
}

// CanTransition reports whether moving to the given status follows a legal
// state machine edge.
func (o *Order) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[o.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further fulfillment run can start from the
// current state without an explicit admin action.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted ||
		o.Status == OrderStatusFailed ||
		o.Status == OrderStatusRefunded
}

// IsRefundable returns true if an admin refund is allowed from this state.
func (o *Order) IsRefundable() bool {
	return o.Status == OrderStatusPaid || o.Status == OrderStatusCompleted
}
