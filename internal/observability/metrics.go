package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus series for the HTTP layer and the document store.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	errors        *prometheus.CounterVec
	storeOps      *prometheus.CounterVec
	storeFailures *prometheus.CounterVec
	lockWait      *prometheus.HistogramVec
}

// NewMetrics registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sms_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sms_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sms_http_errors_total",
			Help: "Error responses by route, method and error code.",
		}, []string{"route", "method", "code"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sms_store_operations_total",
			Help: "Document store operations by collection, operation and result.",
		}, []string{"collection", "op", "result"}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sms_store_failures_total",
			Help: "Storage failures that leave a collection file unreadable or unwritten.",
		}, []string{"collection", "kind"}),
		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sms_store_lock_wait_seconds",
			Help:    "Time spent waiting for a collection lock.",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 10},
		}, []string{"collection"}),
	}

	reg.MustRegister(
		m.requests,
		m.latency,
		m.errors,
		m.storeOps,
		m.storeFailures,
		m.lockWait,
	)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordStoreOp counts a load, save or update against a collection.
func (m *Metrics) RecordStoreOp(collection, op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeOps.WithLabelValues(collection, op, result).Inc()
}

// RecordStoreFailure counts corrupt reads and failed writes.
func (m *Metrics) RecordStoreFailure(collection, kind string) {
	if m == nil {
		return
	}
	m.storeFailures.WithLabelValues(collection, kind).Inc()
}

// ObserveLockWait records how long a mutation queued for its collection.
func (m *Metrics) ObserveLockWait(collection string, d time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.WithLabelValues(collection).Observe(d.Seconds())
}
