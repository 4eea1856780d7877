package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Duplicate capture notifications arrive concurrently when a gateway
// retries. Exactly one transition to paid may happen and exactly one
// fulfillment run may complete.
func TestConcurrency_DuplicateCaptures(t *testing.T) {
	app := newTestApp(t)

	fileID := app.uploadPDF(t, "doc.pdf", []byte("%PDF-1.4 doc"))
	orderID := app.createOrder(t, "pdf_to_word", fileID)

	const attempts = 8
	var wg sync.WaitGroup
	statuses := make([]int, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]interface{}{
				"captureRef": "cap_retry",
				"status":     "completed",
				"amount":     2.99,
				"currency":   "USD",
			})
			resp, err := http.Post(app.server.URL+"/api/v1/payments/"+orderID+"/capture", "application/json", bytes.NewReader(body))
			if err == nil {
				statuses[n] = resp.StatusCode
				resp.Body.Close()
			}
		}(i)
	}
	wg.Wait()

	// At least one capture wins; the rest are acknowledged as duplicates
	// once the order has left pending.
	acknowledged := 0
	for _, code := range statuses {
		if code == http.StatusOK {
			acknowledged++
		}
	}
	assert.GreaterOrEqual(t, acknowledged, 1)

	app.waitForOrderStatus(t, orderID, "completed")

	// A late retry after completion is a clean no-op.
	late := app.capture(t, orderID, "completed")
	assert.Equal(t, http.StatusOK, late.StatusCode)
	late.Body.Close()

	// The produced artifact downloads exactly once per request, intact.
	dl, err := http.Get(app.server.URL + "/api/v1/orders/" + orderID + "/download")
	require.NoError(t, err)
	dl.Body.Close()
	assert.Equal(t, http.StatusOK, dl.StatusCode)
}

func TestConcurrency_ParallelUploads(t *testing.T) {
	app := newTestApp(t)

	const uploads = 10
	var wg sync.WaitGroup
	ids := make([]string, uploads)

	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ids[n] = app.uploadPDF(t, "doc.pdf", []byte("%PDF-1.4 parallel"))
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, uploads)
	for _, id := range ids {
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "file ids must be unique")
		seen[id] = true
	}
}

// Concurrent manual triggers against the same paid order must not run the
// processor twice at once; the Redis lock serializes the runs and the order
// still converges on completed.
func TestConcurrency_ParallelTriggers(t *testing.T) {
	app := newTestApp(t)

	fileID := app.uploadPDF(t, "doc.pdf", []byte("%PDF-1.4 doc"))
	orderID := app.createOrder(t, "pdf_to_word", fileID)
	app.capture(t, orderID, "completed").Body.Close()

	const triggers = 5
	var wg sync.WaitGroup
	for i := 0; i < triggers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(app.server.URL+"/api/v1/process/"+orderID, "application/json", nil)
			if err == nil {
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	app.waitForOrderStatus(t, orderID, "completed")
}
