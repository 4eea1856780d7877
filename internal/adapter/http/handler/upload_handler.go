package handler

import (
	"mime"
	"path/filepath"
	"strings"
	"time"

	"filesolved/internal/adapter/http/dto"
	"filesolved/internal/core/domain"
	"filesolved/internal/core/ports"
	"filesolved/internal/telemetry"
	"filesolved/pkg/apperror"
	"filesolved/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedUploadTypes is the closed set of accepted upload content types.
var allowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-powerpoint":                                     true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/webp": true,
	"image/tiff": true,
	"text/html":  true,
	"text/plain": true,
}

// UploadHandler accepts customer input files ahead of order creation.
type UploadHandler struct {
	fileStore   ports.FileStore
	fileRepo    ports.FileRepository
	notifier    ports.EventNotifier
	maxUploadMB int64
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(fileStore ports.FileStore, fileRepo ports.FileRepository, notifier ports.EventNotifier, maxUploadMB int64) *UploadHandler {
	return &UploadHandler{
		fileStore:   fileStore,
		fileRepo:    fileRepo,
		notifier:    notifier,
		maxUploadMB: maxUploadMB,
	}
}

// Upload handles POST /api/v1/uploads. The multipart field is named "file";
// bytes go to the file store and only metadata is persisted.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.Validation("multipart field \"file\" is required"))
		return
	}

	if fileHeader.Size > h.maxUploadMB<<20 {
		response.Error(c, apperror.ErrFileTooLarge(int(h.maxUploadMB)))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if mt, _, perr := mime.ParseMediaType(contentType); perr == nil {
		contentType = mt
	}
	if !allowedUploadTypes[contentType] {
		response.Error(c, apperror.ErrUnsupportedFormat(ext))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, apperror.ErrStorageError(err))
		return
	}
	defer src.Close()

	fileID := uuid.New()
	saved, err := h.fileStore.SaveInput(fileID, ext, src)
	if err != nil {
		response.Error(c, apperror.ErrStorageError(err))
		return
	}

	expiresAt := time.Now().UTC().Add(domain.InputRetention)
	record := &domain.StoredFile{
		FileID:       fileID,
		Kind:         domain.FileKindInput,
		OriginalName: fileHeader.Filename,
		StoragePath:  saved.Path,
		MimeType:     contentType,
		SizeBytes:    saved.SizeBytes,
		Checksum:     saved.Checksum,
		ExpiresAt:    &expiresAt,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.fileRepo.Create(c.Request.Context(), record); err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	telemetry.FilesUploaded.Inc()
	h.notifier.Emit(c.Request.Context(), domain.EventFileUploaded, map[string]any{
		"fileId":   fileID.String(),
		"fileName": fileHeader.Filename,
		"size":     saved.SizeBytes,
		"mimeType": contentType,
	})

	response.Created(c, dto.UploadResponse{
		FileID:   fileID.String(),
		FileName: fileHeader.Filename,
		Size:     saved.SizeBytes,
		MimeType: contentType,
		Checksum: saved.Checksum,
	})
}
