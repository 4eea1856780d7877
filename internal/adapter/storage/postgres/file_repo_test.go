package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesolved/internal/core/domain"
)

func newTestStoredFile(kind domain.FileKind) *domain.StoredFile {
	orderID := uuid.New()
	return &domain.StoredFile{
		FileID:       uuid.New(),
		OrderID:      &orderID,
		Kind:         kind,
		OriginalName: "contract.pdf",
		StoragePath:  "/uploads/abc.pdf",
		MimeType:     "application/pdf",
		SizeBytes:    2048,
		Checksum:     "deadbeef",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func fileColumnNames() []string {
	return []string{
		"id", "order_id", "kind", "original_name", "storage_path", "mime_type",
		"size_bytes", "checksum", "expires_at", "created_at",
	}
}

func fileRow(f *domain.StoredFile) *pgxmock.Rows {
	return pgxmock.NewRows(fileColumnNames()).AddRow(
		f.FileID, f.OrderID, string(f.Kind), f.OriginalName, f.StoragePath,
		f.MimeType, f.SizeBytes, f.Checksum, f.ExpiresAt, f.CreatedAt,
	)
}

func TestFileRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFileRepo(mock)
	f := newTestStoredFile(domain.FileKindInput)

	mock.ExpectExec("INSERT INTO files").
		WithArgs(f.FileID, f.OrderID, string(f.Kind), f.OriginalName, f.StoragePath,
			f.MimeType, f.SizeBytes, f.Checksum, f.ExpiresAt, f.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), f)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFileRepo(mock)
	f := newTestStoredFile(domain.FileKindInput)

	mock.ExpectQuery("SELECT .+ FROM files WHERE id").
		WithArgs(f.FileID).
		WillReturnRows(fileRow(f))

	result, err := repo.GetByID(context.Background(), f.FileID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, f.StoragePath, result.StoragePath)
	assert.Equal(t, domain.FileKindInput, result.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFileRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM files WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(fileColumnNames()))

	result, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileRepo_LatestOutputByOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFileRepo(mock)
	f := newTestStoredFile(domain.FileKindOutput)

	mock.ExpectQuery("SELECT .+ FROM files").
		WithArgs(*f.OrderID).
		WillReturnRows(fileRow(f))

	result, err := repo.LatestOutputByOrder(context.Background(), *f.OrderID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.FileKindOutput, result.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
