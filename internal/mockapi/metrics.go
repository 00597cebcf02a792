package mockapi

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the request metrics of one mock server. Each server gets
// its own registry so several can run in one process.
type Metrics struct {
	Registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recordsTotal    *prometheus.GaugeVec
}

// NewMetrics creates and registers the mock server metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tsadmin_mock_requests_total",
				Help: "Requests served by the mock platform API",
			},
			[]string{"method", "route", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tsadmin_mock_request_duration_seconds",
				Help:    "Request latency of the mock platform API",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"method", "route"},
		),
		recordsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tsadmin_mock_records",
				Help: "Records currently held per resource",
			},
			[]string{"resource"},
		),
	}
	m.Registry.MustRegister(m.requestsTotal, m.requestDuration, m.recordsTotal)
	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SetRecords publishes the current size of a resource table.
func (m *Metrics) SetRecords(resource string, n int) {
	m.recordsTotal.WithLabelValues(resource).Set(float64(n))
}
