package local

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	base := t.TempDir()
	store, err := NewFileStore(filepath.Join(base, "uploads"), filepath.Join(base, "outputs"))
	require.NoError(t, err)
	return store
}

func TestFileStore_SaveInput(t *testing.T) {
	store := newTestStore(t)
	fileID := uuid.New()
	content := "%PDF-1.4 pretend pdf bytes"

	saved, err := store.SaveInput(fileID, ".pdf", strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, fileID.String()+".pdf", filepath.Base(saved.Path))
	assert.Equal(t, int64(len(content)), saved.SizeBytes)

	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), saved.Checksum)

	assert.True(t, store.Exists(saved.Path))
}

func TestFileStore_Open(t *testing.T) {
	store := newTestStore(t)
	fileID := uuid.New()

	saved, err := store.SaveInput(fileID, ".txt", strings.NewReader("round trip"))
	require.NoError(t, err)

	rc, err := store.Open(saved.Path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "round trip", string(data))
}

func TestFileStore_Exists(t *testing.T) {
	store := newTestStore(t)

	assert.False(t, store.Exists(filepath.Join(t.TempDir(), "nope.pdf")))
	// A directory is not a stored file.
	assert.False(t, store.Exists(t.TempDir()))
}

func TestFileStore_OutputBase(t *testing.T) {
	store := newTestStore(t)
	orderID := uuid.New()

	base := store.OutputBase(orderID)
	assert.Equal(t, orderID.String()+"_output", filepath.Base(base))
}
