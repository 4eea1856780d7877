package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of one fulfillment attempt. There is no
// explicit running state; the order's processing status is the observable
// intermediate while an attempt is in flight.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// JobType tags the kind of background work a job represents.
type JobType string

const (
	JobTypeFileProcessing JobType = "file_processing"
)

// Job priorities: lower is more urgent. Priority is scheduling metadata only,
// not a queue ordering guarantee.
const (
	PriorityHigh   = 0
	PriorityNormal = 1
	PriorityBatch  = 2
)

// Job records one (re)triggered fulfillment run for an order. An order
// accumulates jobs over its lifetime (manual triggers, batch runs,
// reprocessing); jobs are never deleted.
type Job struct {
	JobID        uuid.UUID  `json:"jobId"`
	OrderID      uuid.UUID  `json:"orderId"`
	Type         JobType    `json:"type"`
	Status       JobStatus  `json:"status"`
	Priority     int        `json:"priority"`
	Attempts     int        `json:"attempts"`
	MaxAttempts  int        `json:"maxAttempts"`
	ErrorMessage *string    `json:"errorMessage,omitempty"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// NewJob creates a queued file-processing job for an order.
func NewJob(orderID uuid.UUID, priority int) *Job {
	return &Job{
		JobID:       uuid.New(),
		OrderID:     orderID,
		Type:        JobTypeFileProcessing,
		Status:      JobStatusQueued,
		Priority:    priority,
		MaxAttempts: 3,
		CreatedAt:   time.Now().UTC(),
	}
}
