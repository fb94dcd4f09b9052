package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics holds the counters scraped at /metrics.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	GeocodeRequests   *prometheus.CounterVec
	GeocodeDurationMs prometheus.Histogram
	NearestQueries    *prometheus.CounterVec
	ClosestDistanceKm prometheus.Histogram
	DatasetCinemas    prometheus.Gauge
}

// NewPrometheusMetrics registers the metrics on a fresh registry together
// with the Go and process collectors.
func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinemafinder_geocode_requests_total",
			Help: "Geocoding calls by outcome",
		}, []string{"outcome"}),
		GeocodeDurationMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cinemafinder_geocode_duration_ms",
			Help:    "Geocoding latency in milliseconds",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
		NearestQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cinemafinder_nearest_queries_total",
			Help: "Nearest cinema searches by result",
		}, []string{"found"}),
		ClosestDistanceKm: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cinemafinder_closest_distance_km",
			Help:    "Distance to the closest cinema in kilometres",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 50, 100},
		}),
		DatasetCinemas: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cinemafinder_dataset_cinemas",
			Help: "Number of cinemas loaded",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.GeocodeRequests,
		m.GeocodeDurationMs,
		m.NearestQueries,
		m.ClosestDistanceKm,
		m.DatasetCinemas,
	)
	return m
}

// ObserveGeocode records one geocoding call.
func (m *PrometheusMetrics) ObserveGeocode(outcome string, duration time.Duration) {
	m.GeocodeRequests.WithLabelValues(outcome).Inc()
	m.GeocodeDurationMs.Observe(float64(duration.Milliseconds()))
}

// ObserveNearest records one nearest cinema search.
func (m *PrometheusMetrics) ObserveNearest(found bool, closestKm float64) {
	if !found {
		m.NearestQueries.WithLabelValues("false").Inc()
		return
	}
	m.NearestQueries.WithLabelValues("true").Inc()
	m.ClosestDistanceKm.Observe(closestKm)
}

// SetDatasetSize publishes the number of loaded cinemas.
func (m *PrometheusMetrics) SetDatasetSize(n int) {
	m.DatasetCinemas.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
