package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Outbound backend API metrics
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of requests sent to the carpool backend",
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Backend request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backend_requests_in_flight",
			Help: "Current number of backend requests being awaited",
		},
	)

	// Geocoding metrics
	GeocodeLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_lookups_total",
			Help: "Total number of geocoding lookups",
		},
		[]string{"kind", "status"},
	)

	// Ride tracking metrics
	TrackPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "track_polls_total",
			Help: "Total number of ride tracking poll cycles",
		},
		[]string{"status"},
	)

	TrackPollsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "track_polls_discarded_total",
			Help: "Poll results dropped because a newer poll had already started",
		},
	)

	LiveConnectionsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_track_connections",
			Help: "Current number of open live tracking connections",
		},
	)
)

// RecordBackendRequest records metrics for one outbound backend call.
func RecordBackendRequest(endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	BackendRequestsTotal.WithLabelValues(endpoint, status).Inc()
	BackendRequestDuration.WithLabelValues(endpoint, status).Observe(duration.Seconds())
}

// RecordGeocodeLookup records one forward or reverse geocode attempt.
func RecordGeocodeLookup(kind string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	GeocodeLookupsTotal.WithLabelValues(kind, status).Inc()
}

// RecordTrackPoll records the outcome of one tracking poll cycle.
func RecordTrackPoll(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	TrackPollsTotal.WithLabelValues(status).Inc()
}
