package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "github.com/turtacn/rdkit-go/pkg/errors"
)

// Default buckets.
var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultSizeBuckets         = []float64{100, 1000, 10000, 100000, 1000000}
)

// AppMetrics holds every metric the CLI and server export.
type AppMetrics struct {
	// Native layer
	NativeCallsTotal   *prometheus.CounterVec
	NativeCallDuration *prometheus.HistogramVec
	LiveBuffers        prometheus.Gauge

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec
	HTTPActiveRequests  prometheus.Gauge

	// Cache
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheErrorsTotal *prometheus.CounterVec

	// Batch
	BatchItemsTotal *prometheus.CounterVec
}

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.NativeCallsTotal = collector.RegisterCounter("native_calls_total", "Native library calls", "function", "status")
	m.NativeCallDuration = collector.RegisterHistogram("native_call_duration_seconds", "Native library call duration", nil, "function")
	m.LiveBuffers = collector.RegisterGauge("live_buffers", "Owned native buffers not yet released").WithLabelValues()

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route")
	m.HTTPResponseSize = collector.RegisterHistogram("http_response_size_bytes", "HTTP response size", DefaultSizeBuckets, "method", "route")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests").WithLabelValues()

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.CacheErrorsTotal = collector.RegisterCounter("cache_errors_total", "Cache backend errors", "cache")

	m.BatchItemsTotal = collector.RegisterCounter("batch_items_total", "Batch items processed", "operation", "status")

	return m
}

// ObserveCall implements rdkit.Instrumentation.  Status is "ok" or the
// error code, e.g. "RDK_003".
func (m *AppMetrics) ObserveCall(function string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = string(apperrors.GetCode(err))
	}
	m.NativeCallsTotal.WithLabelValues(function, status).Inc()
	m.NativeCallDuration.WithLabelValues(function).Observe(elapsed.Seconds())
}

// SetLiveBuffers implements rdkit.Instrumentation.
func (m *AppMetrics) SetLiveBuffers(n int64) {
	m.LiveBuffers.Set(float64(n))
}

// RecordHTTPRequest records one completed request.  route is the chi route
// pattern, not the raw path.
func (m *AppMetrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration, respSize int64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.HTTPResponseSize.WithLabelValues(method, route).Observe(float64(respSize))
}

func (m *AppMetrics) AddActiveRequests(delta float64) {
	m.HTTPActiveRequests.Add(delta)
}

// RecordCacheAccess counts a hit or a miss.
func (m *AppMetrics) RecordCacheAccess(cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordCacheError counts a backend failure that was served from source.
func (m *AppMetrics) RecordCacheError(cache string) {
	m.CacheErrorsTotal.WithLabelValues(cache).Inc()
}

// RecordBatchItem counts one batch element by outcome.
func (m *AppMetrics) RecordBatchItem(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.BatchItemsTotal.WithLabelValues(operation, status).Inc()
}

//Personal.AI order the ending
