// Package metrics provides Prometheus metrics for the cheminot application.
package metrics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Resolution metrics
	ResolutionsTotal     *prometheus.CounterVec
	ResolutionConfidence prometheus.Histogram

	// Journey planning metrics
	JourneysTotal     *prometheus.CounterVec
	JourneySearchTime prometheus.Histogram

	// Feed metrics
	FeedStopsLoaded     prometheus.Gauge
	FeedStopTimesLoaded prometheus.Gauge
	FeedReloadsTotal    prometheus.Counter

	// logger for error reporting
	logger *slog.Logger
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	return NewWithLogger(nil)
}

// NewWithLogger creates metrics with a logger for error reporting.
func NewWithLogger(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cheminot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cheminot_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	resolutionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cheminot_resolutions_total",
			Help: "Total number of travel order resolutions by outcome",
		},
		[]string{"outcome"},
	)

	resolutionConfidence := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cheminot_resolution_confidence",
		Help:    "Confidence score distribution for resolved orders",
		Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.75, 0.8, 0.85, 0.9, 0.95, 1},
	})

	journeysTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cheminot_journeys_total",
			Help: "Total number of journey plans by path state",
		},
		[]string{"state"},
	)

	journeySearchTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cheminot_journey_search_duration_seconds",
		Help:    "Journey search latency distribution",
		Buckets: prometheus.DefBuckets,
	})

	feedStopsLoaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cheminot_feed_stops_loaded",
		Help: "Number of stops in the active schedule index",
	})

	feedStopTimesLoaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cheminot_feed_stop_times_loaded",
		Help: "Number of stop times in the active schedule index",
	})

	feedReloadsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cheminot_feed_reloads_total",
		Help: "Total number of schedule feed reloads",
	})

	// Register all metrics with the custom registry
	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		resolutionsTotal,
		resolutionConfidence,
		journeysTotal,
		journeySearchTime,
		feedStopsLoaded,
		feedStopTimesLoaded,
		feedReloadsTotal,
	)

	return &Metrics{
		Registry:             registry,
		HTTPRequestsTotal:    httpRequestsTotal,
		HTTPRequestDuration:  httpRequestDuration,
		ResolutionsTotal:     resolutionsTotal,
		ResolutionConfidence: resolutionConfidence,
		JourneysTotal:        journeysTotal,
		JourneySearchTime:    journeySearchTime,
		FeedStopsLoaded:      feedStopsLoaded,
		FeedStopTimesLoaded:  feedStopTimesLoaded,
		FeedReloadsTotal:     feedReloadsTotal,
		logger:               logger,
	}
}

// ObserveResolution records the outcome and confidence of one resolution.
func (m *Metrics) ObserveResolution(outcome string, confidence float64) {
	m.ResolutionsTotal.WithLabelValues(outcome).Inc()
	m.ResolutionConfidence.Observe(confidence)
}

// ObserveJourney records the path state of one planned journey.
func (m *Metrics) ObserveJourney(state string) {
	m.JourneysTotal.WithLabelValues(state).Inc()
}

// SetFeedStats publishes the size of the active schedule index.
func (m *Metrics) SetFeedStats(stops, stopTimes int) {
	m.FeedStopsLoaded.Set(float64(stops))
	m.FeedStopTimesLoaded.Set(float64(stopTimes))
	m.FeedReloadsTotal.Inc()
}
