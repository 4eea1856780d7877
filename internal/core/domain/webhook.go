package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies one entry in the closed webhook event catalog.
type EventType string

const (
	EventOrderCreated     EventType = "order.created"
	EventOrderPaid        EventType = "order.paid"
	EventOrderProcessing  EventType = "order.processing"
	EventOrderCompleted   EventType = "order.completed"
	EventOrderFailed      EventType = "order.failed"
	EventOrderRefunded    EventType = "order.refunded"
	EventPaymentCompleted EventType = "payment.completed"
	EventPaymentFailed    EventType = "payment.failed"
	EventFileUploaded     EventType = "file.uploaded"
	EventFileProcessed    EventType = "file.processed"

	// EventTestPing is only ever sent through the synchronous webhook test
	// path; it is not subscribable.
	EventTestPing EventType = "test.ping"
)

// EventTypes returns the closed catalog of subscribable event types.
func EventTypes() []EventType {
	return []EventType{
		EventOrderCreated,
		EventOrderPaid,
		EventOrderProcessing,
		EventOrderCompleted,
		EventOrderFailed,
		EventOrderRefunded,
		EventPaymentCompleted,
		EventPaymentFailed,
		EventFileUploaded,
		EventFileProcessed,
	}
}

// IsValidEventType reports whether t belongs to the subscribable catalog.
func IsValidEventType(t EventType) bool {
	for _, known := range EventTypes() {
		if known == t {
			return true
		}
	}
	return false
}

// WebhookSubscription is one registered delivery target. The secret signs
// every delivered envelope; it is returned once at registration and withheld
// from listings afterwards.
type WebhookSubscription struct {
	WebhookID     uuid.UUID   `json:"webhookId"`
	URL           string      `json:"url"`
	EventTypes    []EventType `json:"eventTypes"`
	Secret        string      `json:"-"`
	Active        bool        `json:"active"`
	LastTriggered *time.Time  `json:"lastTriggered,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Subscribes reports whether the subscription wants events of type t.
func (w *WebhookSubscription) Subscribes(t EventType) bool {
	for _, et := range w.EventTypes {
		if et == t {
			return true
		}
	}
	return false
}

// Event is the envelope delivered to webhook subscribers. Events are built
// fresh per emission and never persisted.
type Event struct {
	EventID   uuid.UUID      `json:"eventId"`
	EventType EventType      `json:"eventType"`
	Timestamp string         `json:"timestamp"` // RFC3339
	Data      map[string]any `json:"data"`
}

// NewEvent builds an envelope with a fresh id and current timestamp.
func NewEvent(eventType EventType, data map[string]any) *Event {
	return &Event{
		EventID:   uuid.New(),
		EventType: eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}
}
