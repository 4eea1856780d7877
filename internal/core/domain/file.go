package domain

import (
	"time"

	"github.com/google/uuid"
)

// FileKind distinguishes customer uploads from produced artifacts.
type FileKind string

const (
	FileKindInput  FileKind = "input"
	FileKindOutput FileKind = "output"
)

// Retention windows for stored files.
const (
	InputRetention  = 24 * time.Hour
	OutputRetention = 7 * 24 * time.Hour
)

// StoredFile is the metadata record for one file on disk. The bytes live in
// the file store; expiry cleanup uses ExpiresAt.
type StoredFile struct {
	FileID       uuid.UUID  `json:"fileId"`
	OrderID      *uuid.UUID `json:"orderId,omitempty"` // nil for uploads not yet attached to an order
	Kind         FileKind   `json:"type"`
	OriginalName string     `json:"originalName"`
	StoragePath  string     `json:"storagePath"`
	MimeType     string     `json:"mimeType,omitempty"`
	SizeBytes    int64      `json:"sizeBytes"`
	Checksum     string     `json:"checksum,omitempty"` // SHA-256 hex
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
