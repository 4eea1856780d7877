package postgres

import (
	"context"
	"errors"
	"fmt"

	"filesolved/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FileRepo implements ports.FileRepository.
type FileRepo struct {
	pool Pool
}

// NewFileRepo creates a new FileRepo.
func NewFileRepo(pool Pool) *FileRepo {
	return &FileRepo{pool: pool}
}

const fileColumns = `id, order_id, kind, original_name, storage_path, mime_type,
	size_bytes, checksum, expires_at, created_at`

// Create inserts a new file metadata record.
func (r *FileRepo) Create(ctx context.Context, f *domain.StoredFile) error {
	query := `INSERT INTO files (` + fileColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	_, err := r.pool.Exec(ctx, query,
		f.FileID, f.OrderID, string(f.Kind), f.OriginalName, f.StoragePath,
		f.MimeType, f.SizeBytes, f.Checksum, f.ExpiresAt, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

// GetByID fetches a file record. Returns (nil, nil) when absent.
func (r *FileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StoredFile, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`

	f, err := scanFile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get file by id: %w", err)
	}
	return f, nil
}

// LatestOutputByOrder returns the newest output record for an order, or
// (nil, nil) when none exists.
func (r *FileRepo) LatestOutputByOrder(ctx context.Context, orderID uuid.UUID) (*domain.StoredFile, error) {
	query := `SELECT ` + fileColumns + ` FROM files
		WHERE order_id = $1 AND kind = 'output'
		ORDER BY created_at DESC LIMIT 1`

	f, err := scanFile(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest output by order: %w", err)
	}
	return f, nil
}

func scanFile(row pgx.Row) (*domain.StoredFile, error) {
	f := &domain.StoredFile{}
	var kind string
	err := row.Scan(
		&f.FileID, &f.OrderID, &kind, &f.OriginalName, &f.StoragePath,
		&f.MimeType, &f.SizeBytes, &f.Checksum, &f.ExpiresAt, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Kind = domain.FileKind(kind)
	return f, nil
}
