package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics instruments inbound HTTP traffic.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rationbook_http_requests_total",
			Help: "Total HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rationbook_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// GinMiddleware records request counts and latencies.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// PortalMetrics exposes domain-level instruments.
type PortalMetrics struct {
	recordsSubmitted  prometheus.Counter
	familiesCreated   prometheus.Counter
	grievancesCreated prometheus.Counter
	statusChanges     *prometheus.CounterVec
}

func NewPortalMetrics() *PortalMetrics {
	return &PortalMetrics{
		recordsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rationbook_distribution_records_total",
			Help: "Distribution records submitted through the public endpoint.",
		}),
		familiesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rationbook_families_created_total",
			Help: "Families created on first-time submissions.",
		}),
		grievancesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rationbook_grievances_created_total",
			Help: "Grievances filed through the public endpoint.",
		}),
		statusChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rationbook_grievance_status_changes_total",
			Help: "Admin grievance status changes by target status.",
		}, []string{"status"}),
	}
}

func (m *PortalMetrics) RecordSubmitted() {
	if m == nil {
		return
	}
	m.recordsSubmitted.Inc()
}

func (m *PortalMetrics) FamilyCreated() {
	if m == nil {
		return
	}
	m.familiesCreated.Inc()
}

func (m *PortalMetrics) GrievanceCreated() {
	if m == nil {
		return
	}
	m.grievancesCreated.Inc()
}

func (m *PortalMetrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}
