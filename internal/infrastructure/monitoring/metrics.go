package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_lookups_total",
			Help: "Total number of catalog lookups by result",
		},
		[]string{"result"},
	)

	ScansStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scans_started_total",
			Help: "Total number of scan sessions started",
		},
	)

	ScanFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scan_failures_total",
			Help: "Total number of scan sessions that failed to start",
		},
		[]string{"reason"},
	)

	CodesDecodedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codes_decoded_total",
			Help: "Total number of successfully decoded codes",
		},
	)

	PurchaseAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_attempts_total",
			Help: "Total number of purchase attempts",
		},
	)

	PurchaseSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_success_total",
			Help: "Total number of completed purchases",
		},
	)

	PurchaseFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_failure_total",
			Help: "Total number of failed purchases",
		},
		[]string{"reason"},
	)

	DetailPostsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_detail_posts_total",
			Help: "Total number of detail records posted to the ledger",
		},
		[]string{"status"},
	)
)

var (
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Duration of backend REST calls in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "status"},
	)
)

func TimeBackendRequest(endpoint string) func(status string) {
	start := time.Now()
	return func(status string) {
		duration := time.Since(start).Seconds()
		BackendRequestDuration.WithLabelValues(endpoint, status).Observe(duration)
	}
}

func RecordLookup(result string) {
	LookupsTotal.WithLabelValues(result).Inc()
}

func RecordScanStarted() {
	ScansStartedTotal.Inc()
}

func RecordScanFailure(reason string) {
	ScanFailuresTotal.WithLabelValues(reason).Inc()
}

func RecordCodeDecoded() {
	CodesDecodedTotal.Inc()
}

func RecordPurchaseAttempt() {
	PurchaseAttemptsTotal.Inc()
}

func RecordPurchaseSuccess(postedUnits, failedUnits int) {
	PurchaseSuccessTotal.Inc()
	DetailPostsTotal.WithLabelValues("success").Add(float64(postedUnits))
	DetailPostsTotal.WithLabelValues("failure").Add(float64(failedUnits))
}

func RecordPurchaseFailure(reason string) {
	PurchaseFailureTotal.WithLabelValues(reason).Inc()
}
