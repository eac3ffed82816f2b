package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordsStoreOps(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordStoreOp("books", "update", nil)
	m.RecordStoreOp("books", "update", nil)
	m.RecordStoreOp("books", "update", errors.New("boom"))
	m.RecordStoreFailure("books", "write")

	if got := testutil.ToFloat64(m.storeOps.WithLabelValues("books", "update", "ok")); got != 2 {
		t.Errorf("ok ops = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.storeOps.WithLabelValues("books", "update", "error")); got != 1 {
		t.Errorf("error ops = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.storeFailures.WithLabelValues("books", "write")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
}

func TestMetricsRecordsRequests(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordRequest("/api/books", "GET", 200, 5*time.Millisecond)
	m.RecordError("/api/books", "GET", "UNAUTHORIZED")

	if got := testutil.ToFloat64(m.requests.WithLabelValues("/api/books", "GET", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.errors.WithLabelValues("/api/books", "GET", "UNAUTHORIZED")); got != 1 {
		t.Errorf("errors = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Second)
	m.RecordError("/", "GET", "X")
	m.RecordStoreOp("c", "load", nil)
	m.RecordStoreFailure("c", "corrupt")
	m.ObserveLockWait("c", time.Second)
}
