package prometheus

import (
	"net/http"
	"time"

	"leave-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter
	LoginCounter        prometheus.Counter
	RegisterCounter     prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Leave request metrics
	LeaveOperationsCounter prometheus.CounterVec

	// Requests currently in each lifecycle status
	RequestsByStatusGauge prometheus.GaugeVec

	// Registered employee accounts
	RegisteredEmployeesGauge prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_requests_total",
			Help: "Total number of login requests",
		},
	)

	RegisterCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_register_requests_total",
			Help: "Total number of registration requests",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	LeaveOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Total number of leave request operations",
		},
		[]string{"operation"},
	)

	RequestsByStatusGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_requests_by_status",
			Help: "Number of leave requests in each status",
		},
		[]string{"status"},
	)

	RegisteredEmployeesGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_registered_employees",
			Help: "Number of registered employee accounts",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordLeaveOperation increments the counter for leave request operations
func RecordLeaveOperation(operation string) {
	LeaveOperationsCounter.WithLabelValues(operation).Inc()
}

// UpdateStatusCounts updates the per-status gauges from an aggregation pass
func UpdateStatusCounts(pending, approved, rejected int) {
	RequestsByStatusGauge.WithLabelValues("pending").Set(float64(pending))
	RequestsByStatusGauge.WithLabelValues("approved").Set(float64(approved))
	RequestsByStatusGauge.WithLabelValues("rejected").Set(float64(rejected))
}

// UpdateRegisteredEmployees updates the registered employees gauge
func UpdateRegisteredEmployees(count int) {
	RegisteredEmployeesGauge.Set(float64(count))
}

// GetPrometheusHandler returns an HTTP handler for exposing Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
