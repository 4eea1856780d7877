// Package local stores file bytes on the local filesystem. Processors need
// plain paths to read inputs and write artifacts, so the bytes stay on disk
// and only metadata goes through PostgreSQL.
package local

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filesolved/internal/core/ports"

	"github.com/google/uuid"
)

// FileStore implements ports.FileStore on two directories: one for customer
// uploads and one for produced artifacts.
type FileStore struct {
	uploadDir string
	outputDir string
}

// NewFileStore creates the directories if needed and returns the store.
func NewFileStore(uploadDir, outputDir string) (*FileStore, error) {
	for _, dir := range []string{uploadDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}
	return &FileStore{uploadDir: uploadDir, outputDir: outputDir}, nil
}

// SaveInput writes an upload as <fileID><ext> under the uploads dir,
// computing size and SHA-256 checksum while streaming.
func (s *FileStore) SaveInput(fileID uuid.UUID, ext string, r io.Reader) (*ports.SavedFile, error) {
	path := filepath.Join(s.uploadDir, fileID.String()+ext)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(f, hasher), r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &ports.SavedFile{
		Path:      path,
		SizeBytes: size,
		Checksum:  hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Exists reports whether the stored bytes are still present.
func (s *FileStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// OutputBase returns the path prefix processors append their artifact suffix
// to for a given order.
func (s *FileStore) OutputBase(orderID uuid.UUID) string {
	return filepath.Join(s.outputDir, orderID.String()+"_output")
}

// Open reads back stored bytes.
func (s *FileStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stored file: %w", err)
	}
	return f, nil
}
