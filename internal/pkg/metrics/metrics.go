package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	resourcesSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_resources_saved_total",
			Help: "Resources saved, by resource type",
		},
		[]string{"type"},
	)

	validationRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_validation_rejections_total",
			Help: "Resource saves rejected by validation, by field",
		},
		[]string{"field"},
	)

	geocodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_geocode_requests_total",
			Help: "Geocoding provider calls, by outcome",
		},
		[]string{"operation", "status"},
	)

	geocodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_geocode_duration_seconds",
			Help:    "Geocoding provider call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	versionsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_versions_recorded_total",
			Help: "Resource versions written by the version worker",
		},
	)
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordResourceSaved(resourceType string) {
	resourcesSavedTotal.WithLabelValues(resourceType).Inc()
}

func RecordValidationRejection(field string) {
	validationRejectionsTotal.WithLabelValues(field).Inc()
}

// RecordGeocode records a provider call; operation is "search" or "reverse".
func RecordGeocode(operation string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	geocodeRequestsTotal.WithLabelValues(operation, status).Inc()
	geocodeDuration.Observe(duration.Seconds())
}

func RecordVersion() {
	versionsRecordedTotal.Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
