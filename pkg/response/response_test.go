package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesolved/pkg/apperror"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestOK(t *testing.T) {
	c, rec := newTestContext()
	c.Set("request_id", "req-123")

	OK(c, gin.H{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "req-123", resp.RequestID)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestCreatedAndAccepted(t *testing.T) {
	c, rec := newTestContext()
	Created(c, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	c2, rec2 := newTestContext()
	Accepted(c2, gin.H{"status": "queued"})
	assert.Equal(t, http.StatusAccepted, rec2.Code)
}

func TestNoContent(t *testing.T) {
	c, rec := newTestContext()
	NoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestError_AppError(t *testing.T) {
	c, rec := newTestContext()
	Error(c, apperror.ErrNotFound("Order"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ORD_001", resp.ErrorCode)
	assert.Equal(t, "Order not found", resp.Message)
}

func TestError_Unknown(t *testing.T) {
	c, rec := newTestContext()
	Error(c, errors.New("wat"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SYS_000", resp.ErrorCode)
	assert.Equal(t, "Internal server error", resp.Message)
}

func TestErrorWithDetails(t *testing.T) {
	c, rec := newTestContext()
	ErrorWithDetails(c, apperror.Validation("Extra field validation failed"),
		[]string{"Missing required field: fax_number"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Details)
}
