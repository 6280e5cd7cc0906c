package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Bids placed, labelled by outcome of the handler.
	BidsPlacedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bids_placed_count",
			Help: "Total number of bid placement attempts",
		},
		[]string{"status"}, // status: success, rejected, failed
	)

	// Contracts formed through bid acceptance.
	ContractsFormedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contracts_formed_count",
			Help: "Total number of accepted bids that formed a contract",
		},
	)

	// Deadline reminders sent by the background sweep.
	RemindersSentCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_sent_count",
			Help: "Total number of deadline reminder notifications sent",
		},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementBidsPlaced(status string) {
	BidsPlacedCount.WithLabelValues(status).Inc()
}

func IncrementContractsFormed() {
	ContractsFormedCount.Inc()
}

func IncrementRemindersSent() {
	RemindersSentCount.Inc()
}
