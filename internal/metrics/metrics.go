package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AssetsByStatus is the number of live assets per status.
	AssetsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_assets",
			Help: "Number of live assets by status",
		},
		[]string{"status"},
	)

	// ChangelogEventsTotal counts recorded change events by action kind.
	ChangelogEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_changelog_events_total",
			Help: "Total number of change events recorded, by action",
		},
		[]string{"action"},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AssetsByStatus, ChangelogEventsTotal)
}

// NormalizePath keeps label cardinality down by collapsing numeric path
// segments: /v1/assets/123/history -> /v1/assets/{id}/history.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for one HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// SetAssets sets the live-asset gauge for one status.
func SetAssets(status string, n int) {
	AssetsByStatus.WithLabelValues(status).Set(float64(n))
}

// IncChangelogEvent counts one recorded change event.
func IncChangelogEvent(action string) {
	ChangelogEventsTotal.WithLabelValues(action).Inc()
}
