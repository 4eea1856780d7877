package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total", Help: "Orders created"})
	OrdersCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_completed_total", Help: "Fulfillment runs that completed"})
	OrdersFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_failed_total", Help: "Fulfillment runs that failed"})
	FilesUploaded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "files_uploaded_total", Help: "Input files accepted"})
	WebhookDeliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_deliveries_total", Help: "Webhook delivery attempts by outcome"},
		[]string{"outcome"})
	ProcessingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_processing_duration_seconds",
		Help:    "Wall time of one fulfillment run",
		Buckets: prometheus.DefBuckets,
	})
)

// Handler exposes the /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			OrdersCreated,
			OrdersCompleted,
			OrdersFailed,
			FilesUploaded,
			WebhookDeliveries,
			ProcessingDuration,
		)
	})
	return promhttp.Handler()
}
