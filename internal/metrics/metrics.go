// Package metrics gom các Prometheus collector của server.
// Một *Metrics nil nghĩa là metrics bị tắt: mọi method đều an toàn khi receiver nil.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quickart"

// Kết quả tra cache map
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics chứa các collector đăng ký trên registry riêng của server
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec   // Theo operation (query/mutation) và status (ok/error)
	fieldDuration *prometheus.HistogramVec // Theo root field
	fieldErrors   *prometheus.CounterVec   // Theo root field và mã lỗi
	inserted      *prometheus.CounterVec   // Theo collection
	cacheRequests *prometheus.CounterVec   // Theo kết quả hit/miss/error
}

// New tạo registry mới và đăng ký tất cả collector
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "requests_total",
			Help:      "Total number of GraphQL requests",
		}, []string{"operation", "status"}),

		fieldDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "field_duration_seconds",
			Help:      "Root field resolution duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"field"}),

		fieldErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graphql",
			Name:      "field_errors_total",
			Help:      "Total number of root field resolution errors",
		}, []string{"field", "code"}),

		inserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "documents_inserted_total",
			Help:      "Total number of documents inserted",
		}, []string{"collection"}),

		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "map_cache",
			Name:      "requests_total",
			Help:      "Map cache lookups by result",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.fieldDuration,
		m.fieldErrors,
		m.inserted,
		m.cacheRequests,
	)
	return m
}

// Handler trả về http.Handler phục vụ /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest đếm một GraphQL request đã xử lý xong
func (m *Metrics) ObserveRequest(operation string, failed bool) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "error"
	}
	m.requests.WithLabelValues(operation, status).Inc()
}

// ObserveField ghi thời gian resolve một root field; errCode rỗng nghĩa là thành công
func (m *Metrics) ObserveField(field string, elapsed time.Duration, errCode string) {
	if m == nil {
		return
	}
	m.fieldDuration.WithLabelValues(field).Observe(elapsed.Seconds())
	if errCode != "" {
		m.fieldErrors.WithLabelValues(field, errCode).Inc()
	}
}

// IncInserted đếm document mới trong collection
func (m *Metrics) IncInserted(collection string) {
	if m == nil {
		return
	}
	m.inserted.WithLabelValues(collection).Inc()
}

// ObserveCache đếm kết quả tra cache map
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}
