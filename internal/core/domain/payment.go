package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the state of a gateway capture.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment records one capture or refund outcome reported by the external
// payment gateway. The gateway itself (OAuth, capture flow) is out of scope;
// only its reported results drive order transitions.
type Payment struct {
	PaymentID    uuid.UUID     `json:"paymentId"`
	OrderID      uuid.UUID     `json:"orderId"`
	Provider     string        `json:"provider"`
	ProviderRef  string        `json:"providerRef,omitempty"` // gateway capture id
	Amount       float64       `json:"amount"`
	Currency     string        `json:"currency"`
	Status       PaymentStatus `json:"status"`
	RefundAmount *float64      `json:"refundAmount,omitempty"`
	RefundReason *string       `json:"refundReason,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	CompletedAt  *time.Time    `json:"completedAt,omitempty"`
}
